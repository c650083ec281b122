package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"giveaway-club-backend/internal/common/logger"
	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	garepository "giveaway-club-backend/internal/features/giveaway/repository"
	gaservice "giveaway-club-backend/internal/features/giveaway/service"
	invmodels "giveaway-club-backend/internal/features/investigation/models"
	invservice "giveaway-club-backend/internal/features/investigation/service"
	memmodels "giveaway-club-backend/internal/features/member/models"
	memrepository "giveaway-club-backend/internal/features/member/repository"
	memservice "giveaway-club-backend/internal/features/member/service"
	"giveaway-club-backend/internal/platform/sheets"
)

// Input is one run's worth of scraped data, produced by the collectors
// upstream of this service.
type Input struct {
	Giveaways []*gamodels.Giveaway
	Roster    []*memmodels.Member
	Entries   map[string][]invmodels.Entry
}

// Report summarizes one completed run.
type Report struct {
	RunID          uuid.UUID
	Giveaways      int
	Members        int
	ExMembers      int
	Leavers        int
	Rejoiners      int
	Classification gaservice.ClassifyReport
	Duration       time.Duration
}

// FeedFetcher provides the proof-of-play feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) (*sheets.Feed, error)
}

// Coordinator drives a full processing run in its fixed order: merge
// giveaways, classify, track entry churn, enrich, aggregate, persist.
// One run owns the whole dataset; nothing here is safe for concurrent
// invocation.
type Coordinator struct {
	giveaways  garepository.GiveawayRepository
	members    memrepository.MemberRepository
	exMembers  memrepository.ExMemberRepository
	classifier *gaservice.ClassifierService
	tracker    *invservice.TrackerService
	feed       FeedFetcher
	enricher   *memservice.EnrichmentService
	stats      *memservice.StatsService
	playData   *memservice.PlayDataService
}

func NewCoordinator(
	giveaways garepository.GiveawayRepository,
	members memrepository.MemberRepository,
	exMembers memrepository.ExMemberRepository,
	classifier *gaservice.ClassifierService,
	tracker *invservice.TrackerService,
	feed FeedFetcher,
	enricher *memservice.EnrichmentService,
	stats *memservice.StatsService,
	playData *memservice.PlayDataService,
) *Coordinator {
	return &Coordinator{
		giveaways:  giveaways,
		members:    members,
		exMembers:  exMembers,
		classifier: classifier,
		tracker:    tracker,
		feed:       feed,
		enricher:   enricher,
		stats:      stats,
		playData:   playData,
	}
}

// Run executes one full pass over the input. External lookup failures
// degrade individual items; only store failures abort the run.
func (c *Coordinator) Run(ctx context.Context, input Input) (*Report, error) {
	started := time.Now()
	now := started.Unix()

	report := &Report{RunID: uuid.New()}

	logger.Info().
		Str("run_id", report.RunID.String()).
		Int("giveaways", len(input.Giveaways)).
		Int("roster", len(input.Roster)).
		Msg("sync run started")

	giveaways, err := c.mergeGiveaways(ctx, input.Giveaways)
	if err != nil {
		return nil, err
	}
	report.Giveaways = len(giveaways)

	report.Classification = c.classifier.ClassifyAll(ctx, giveaways)

	if err := c.trackEntries(ctx, giveaways, input.Entries, now, report); err != nil {
		return nil, err
	}

	feed := c.fetchFeed(ctx)

	byLink := make(map[string]*gamodels.Giveaway, len(giveaways))
	for _, g := range giveaways {
		byLink[g.Link] = g
	}
	enteredByMember := enteredGiveaways(input.Entries, byLink)

	members, err := c.processRoster(ctx, input.Roster, giveaways, feed, enteredByMember, started)
	if err != nil {
		return nil, err
	}
	report.Members = len(members)

	exMembers, err := c.retireMissing(ctx, input.Roster, now)
	if err != nil {
		return nil, err
	}
	report.ExMembers = exMembers

	if err := c.giveaways.SaveAll(ctx, giveaways); err != nil {
		return nil, err
	}
	if err := c.members.SaveAll(ctx, members); err != nil {
		return nil, err
	}

	report.Duration = time.Since(started)

	logger.Info().
		Str("run_id", report.RunID.String()).
		Int("giveaways", report.Giveaways).
		Int("members", report.Members).
		Int("ex_members", report.ExMembers).
		Int("leavers", report.Leavers).
		Int("rejoiners", report.Rejoiners).
		Dur("duration", report.Duration).
		Msg("sync run complete")

	return report, nil
}

// mergeGiveaways folds fresh scraped giveaways into the persisted set.
// Stored giveaways absent from this scrape are kept; history never
// shrinks.
func (c *Coordinator) mergeGiveaways(ctx context.Context, fresh []*gamodels.Giveaway) ([]*gamodels.Giveaway, error) {
	stored, err := c.giveaways.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*gamodels.Giveaway, len(stored))
	for _, g := range stored {
		byID[g.ID] = g
	}

	for _, g := range fresh {
		byID[g.ID] = gaservice.Merge(byID[g.ID], g)
	}

	merged := make([]*gamodels.Giveaway, 0, len(byID))
	for _, g := range byID {
		merged = append(merged, g)
	}
	return merged, nil
}

func (c *Coordinator) trackEntries(ctx context.Context, giveaways []*gamodels.Giveaway, entries map[string][]invmodels.Entry, now int64, report *Report) error {
	if c.tracker == nil {
		return nil
	}

	for _, g := range giveaways {
		current, ok := entries[g.Link]
		if !ok {
			continue
		}

		track, err := c.tracker.ShouldTrack(ctx, g, now)
		if err != nil {
			return err
		}
		if !track {
			continue
		}

		tr, err := c.tracker.Process(ctx, g, current, now)
		if err != nil {
			return err
		}
		report.Leavers += tr.Leavers
		report.Rejoiners += tr.Rejoiners
	}
	return nil
}

// fetchFeed returns the proof-of-play feed or an empty one. A feed
// outage must not sink the run; proof flags simply stay unproven until
// the next successful fetch.
func (c *Coordinator) fetchFeed(ctx context.Context) *sheets.Feed {
	if c.feed == nil {
		return sheets.NewFeed(nil)
	}

	feed, err := c.feed.Fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("proof-of-play feed unavailable, continuing without it")
		return sheets.NewFeed(nil)
	}
	return feed
}

func (c *Coordinator) processRoster(
	ctx context.Context,
	roster []*memmodels.Member,
	giveaways []*gamodels.Giveaway,
	feed *sheets.Feed,
	enteredByMember map[string][]*gamodels.Giveaway,
	started time.Time,
) ([]*memmodels.Member, error) {
	now := started.Unix()

	members := make([]*memmodels.Member, 0, len(roster))
	for _, fresh := range roster {
		existing, err := c.members.Get(ctx, fresh.Username)
		if err != nil && err != memrepository.ErrNotFound {
			return nil, err
		}

		c.enricher.Enrich(ctx, fresh, giveaways, feed, now)
		member := memservice.MergeMember(existing, fresh)

		if c.playData != nil {
			c.playData.Refresh(ctx, member, started)
		}

		c.stats.CalculateStats(member)
		member.Warnings = memservice.ComputeWarnings(member, enteredByMember[member.Username], now)

		members = append(members, member)
	}
	return members, nil
}

// retireMissing moves stored members absent from the fresh roster into
// the ex-member store. Nothing is hard-deleted beyond the active key.
func (c *Coordinator) retireMissing(ctx context.Context, roster []*memmodels.Member, now int64) (int, error) {
	onRoster := make(map[string]struct{}, len(roster))
	for _, m := range roster {
		onRoster[m.Username] = struct{}{}
	}

	stored, err := c.members.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	retired := 0
	for _, m := range stored {
		if _, ok := onRoster[m.Username]; ok {
			continue
		}

		ex := &memmodels.ExMember{Member: *m, LeftAt: now}
		if err := c.exMembers.Save(ctx, ex); err != nil {
			return retired, err
		}
		if err := c.members.Delete(ctx, m.Username); err != nil {
			return retired, err
		}
		retired++

		logger.Info().
			Str("member", m.Username).
			Msg("member left the group, moved to ex-members")
	}
	return retired, nil
}

// enteredGiveaways inverts the entry snapshots into a per-member list
// of giveaways they currently sit in.
func enteredGiveaways(entries map[string][]invmodels.Entry, byLink map[string]*gamodels.Giveaway) map[string][]*gamodels.Giveaway {
	result := make(map[string][]*gamodels.Giveaway)
	for link, list := range entries {
		g, ok := byLink[link]
		if !ok {
			continue
		}
		for _, e := range list {
			result[e.Username] = append(result[e.Username], g)
		}
	}
	return result
}
