package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"giveaway-club-backend/internal/common/cache"
	"giveaway-club-backend/internal/common/config"
	"giveaway-club-backend/internal/common/logger"
	giveawayRepo "giveaway-club-backend/internal/features/giveaway/repository/redis"
	giveawayService "giveaway-club-backend/internal/features/giveaway/service"
	investigationRepo "giveaway-club-backend/internal/features/investigation/repository/redis"
	investigationService "giveaway-club-backend/internal/features/investigation/service"
	memberRepo "giveaway-club-backend/internal/features/member/repository/redis"
	memberService "giveaway-club-backend/internal/features/member/service"
	syncService "giveaway-club-backend/internal/features/sync/service"
	"giveaway-club-backend/internal/platform/bundlegames"
	"giveaway-club-backend/internal/platform/prices"
	redisplatform "giveaway-club-backend/internal/platform/redis"
	"giveaway-club-backend/internal/platform/sheets"
	"giveaway-club-backend/internal/platform/steam"
)

func main() {
	cfg := config.Load()
	logger.Init("sync", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisplatform.Open(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	priceIndex, err := prices.Load(cfg.Data.PricesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("price catalogue load failed")
	}
	logger.Info().Int("games", priceIndex.Len()).Msg("price catalogue loaded")

	bundleClient := bundlegames.NewClient(cfg.BundleGames.BaseURL, cfg.BundleGames.CallDelay, cfg.BundleGames.MaxRetries)
	resolver, err := giveawayService.NewResolver(bundleClient, cfg.BundleGames.CacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolver init failed")
	}
	classifier := giveawayService.NewClassifierService(resolver)

	sheetsClient := sheets.NewClient(cfg.Sheets.SheetID, cfg.Sheets.ProofGID, cfg.Sheets.PlayRequiredGID, cacheService, cfg.Sheets.CacheTTL)

	var playData *memberService.PlayDataService
	if !cfg.Steam.Skip && cfg.Steam.APIKey != "" {
		steamClient := steam.NewClient(cfg.Steam.APIKey, cfg.Steam.CallDelay)
		playData = memberService.NewPlayDataService(steamClient, cfg.Steam.RefreshWindow)
	} else {
		logger.Info().Msg("steam play data refresh disabled")
	}

	coordinator := syncService.NewCoordinator(
		giveawayRepo.NewGiveawayRepository(redisClient),
		memberRepo.NewMemberRepository(redisClient),
		memberRepo.NewExMemberRepository(redisClient),
		classifier,
		investigationService.NewTrackerService(
			investigationRepo.NewEntryRepository(redisClient),
			investigationRepo.NewLeaverRepository(redisClient),
		),
		sheetsClient,
		memberService.NewEnrichmentService(classifier),
		memberService.NewStatsService(priceIndex),
		playData,
	)

	runOnce := func() {
		input, err := syncService.LoadInput(cfg.Data.GiveawaysFile, cfg.Data.RosterFile, cfg.Data.EntriesFile)
		if err != nil {
			logger.Error().Err(err).Msg("input load failed, skipping run")
			return
		}

		if _, err := coordinator.Run(ctx, input); err != nil {
			logger.Error().Err(err).Msg("sync run failed")
		}
	}

	if cfg.Sync.Cron == "" {
		runOnce()
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Sync.Cron, runOnce); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Sync.Cron).Msg("invalid cron schedule")
	}

	scheduler.Start()
	logger.Info().Str("schedule", cfg.Sync.Cron).Msg("scheduler started")

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	os.Exit(0)
}
