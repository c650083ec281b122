package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// RedisConfig holds the connection settings for the run's dataset store.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Redis RedisConfig

	BundleGames struct {
		BaseURL    string        `env:"BUNDLE_GAMES_URL" envDefault:"https://www.steamgifts.com/bundle-games/search"`
		CallDelay  time.Duration `env:"BUNDLE_GAMES_DELAY" envDefault:"1200ms"`
		MaxRetries int           `env:"BUNDLE_GAMES_MAX_RETRIES" envDefault:"3"`
		CacheSize  int           `env:"BUNDLE_GAMES_CACHE_SIZE" envDefault:"4096"`
	}

	Sheets struct {
		SheetID         string        `env:"PROOF_OF_PLAY_SHEET_ID"`
		ProofGID        string        `env:"PROOF_OF_PLAY_GID" envDefault:"0"`
		PlayRequiredGID string        `env:"PLAY_REQUIRED_GID" envDefault:"2065024481"`
		CacheTTL        time.Duration `env:"PROOF_OF_PLAY_CACHE_TTL" envDefault:"25m"`
	}

	Steam struct {
		APIKey string `env:"STEAM_API_KEY"`
		// Skip refreshing play data for wins that ended longer ago than this.
		RefreshWindow time.Duration `env:"STEAM_REFRESH_WINDOW" envDefault:"1440h"`
		CallDelay     time.Duration `env:"STEAM_CALL_DELAY" envDefault:"400ms"`
		Skip          bool          `env:"SKIP_STEAM_API" envDefault:"false"`
	}

	Data struct {
		GiveawaysFile string `env:"GIVEAWAYS_FILE" envDefault:"data/giveaways.json"`
		RosterFile    string `env:"ROSTER_FILE" envDefault:"data/group_users.json"`
		EntriesFile   string `env:"ENTRIES_FILE" envDefault:"data/user_entries.json"`
		PricesFile    string `env:"PRICES_FILE" envDefault:"data/game_data.json"`
	}

	Sync struct {
		// Cron schedule for repeated runs. Empty means run once and exit.
		Cron string `env:"SYNC_CRON"`
	}
}

func Load() *Config {
	// Ignore a missing .env file; in production the variables are set
	// directly in the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
