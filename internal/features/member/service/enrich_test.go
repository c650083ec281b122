package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gamodels "giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/features/member/models"
	"giveaway-club-backend/internal/platform/sheets"
)

func strPtr(s string) *string { return &s }

const testNow = int64(10000)

func endedGiveaway(id, creator string, winners ...gamodels.Winner) *gamodels.Giveaway {
	return &gamodels.Giveaway{
		ID:           id,
		Name:         "Game " + id,
		Link:         "https://example.com/giveaway/" + id,
		Creator:      creator,
		EndTimestamp: testNow - 100,
		CVState:      gamodels.CVStateClassified,
		CVStatus:     gamodels.CVFull,
		Copies:       len(winners),
		Winners:      winners,
		HasWinners:   len(winners) > 0,
	}
}

func TestEnrichWonList(t *testing.T) {
	svc := NewEnrichmentService(nil)

	t.Run("only received wins are listed", func(t *testing.T) {
		giveaways := []*gamodels.Giveaway{
			endedGiveaway("rcv01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerReceived}),
			endedGiveaway("not01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerNotReceived}),
			endedGiveaway("awa01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerAwaitingFeedback}),
			endedGiveaway("oth01", "creator", gamodels.Winner{Name: strPtr("bob"), Status: gamodels.WinnerReceived}),
		}

		member := &models.Member{Username: "alice"}
		svc.Enrich(context.Background(), member, giveaways, sheets.NewFeed(nil), testNow)

		require.Len(t, member.GiveawaysWon, 1)
		assert.Equal(t, "Game rcv01", member.GiveawaysWon[0].Name)
		assert.Equal(t, "received", member.GiveawaysWon[0].Status)
	})

	t.Run("proof of play matches by id and winner", func(t *testing.T) {
		giveaways := []*gamodels.Giveaway{
			endedGiveaway("pop01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerReceived}),
		}
		feed := sheets.NewFeed([]sheets.ProofRow{
			{GiveawayID: "pop01", Winner: " Alice ", CompletePlaying: true},
		})

		member := &models.Member{Username: "alice"}
		svc.Enrich(context.Background(), member, giveaways, feed, testNow)

		require.Len(t, member.GiveawaysWon, 1)
		assert.True(t, member.GiveawaysWon[0].ProofOfPlay)
	})

	t.Run("feed play requirement forces the flag and attaches terms", func(t *testing.T) {
		giveaways := []*gamodels.Giveaway{
			endedGiveaway("req01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerReceived}),
		}
		feed := sheets.NewFeed([]sheets.ProofRow{
			{
				GiveawayID: "req01",
				Winner:     "alice",
				PlayRequirement: &sheets.PlayRequirement{
					RequirementsMet:  false,
					DeadlineInMonths: 2,
					Deadline:         "01-12-2026",
				},
			},
		})

		member := &models.Member{Username: "alice"}
		svc.Enrich(context.Background(), member, giveaways, feed, testNow)

		require.Len(t, member.GiveawaysWon, 1)
		won := member.GiveawaysWon[0]
		assert.True(t, won.RequiredPlay)
		require.NotNil(t, won.RequiredPlayMeta)
		assert.Equal(t, 2, won.RequiredPlayMeta.DeadlineInMonths)
		assert.Equal(t, "01-12-2026", won.RequiredPlayMeta.Deadline)
	})
}

func TestEnrichCreatedList(t *testing.T) {
	svc := NewEnrichmentService(nil)

	t.Run("had_winners stays nil until ended", func(t *testing.T) {
		open := endedGiveaway("open1", "alice")
		open.EndTimestamp = testNow + 1000

		flopped := endedGiveaway("flop1", "alice")
		won := endedGiveaway("won01", "alice", gamodels.Winner{Name: strPtr("bob"), Status: gamodels.WinnerReceived})

		member := &models.Member{Username: "alice"}
		svc.Enrich(context.Background(), member, []*gamodels.Giveaway{open, flopped, won}, sheets.NewFeed(nil), testNow)

		require.Len(t, member.GiveawaysCreated, 3)
		byName := map[string]models.CreatedEntry{}
		for _, e := range member.GiveawaysCreated {
			byName[e.Name] = e
		}

		assert.Nil(t, byName["Game open1"].HadWinners)
		require.NotNil(t, byName["Game flop1"].HadWinners)
		assert.False(t, *byName["Game flop1"].HadWinners)
		require.NotNil(t, byName["Game won01"].HadWinners)
		assert.True(t, *byName["Game won01"].HadWinners)
	})

	t.Run("winner activation requires name and received", func(t *testing.T) {
		g := endedGiveaway("act01", "alice",
			gamodels.Winner{Name: strPtr("bob"), Status: gamodels.WinnerReceived},
			gamodels.Winner{Name: strPtr("carol"), Status: gamodels.WinnerNotReceived},
			gamodels.Winner{Name: nil, Status: gamodels.WinnerAwaitingFeedback},
		)

		member := &models.Member{Username: "alice"}
		svc.Enrich(context.Background(), member, []*gamodels.Giveaway{g}, sheets.NewFeed(nil), testNow)

		require.Len(t, member.GiveawaysCreated, 1)
		winners := member.GiveawaysCreated[0].Winners
		require.Len(t, winners, 3)
		assert.True(t, winners[0].Activated)
		assert.False(t, winners[1].Activated)
		assert.False(t, winners[2].Activated)
	})
}

type fixedReceipts struct {
	status gamodels.CVStatus
}

func (f fixedReceipts) ReceiptStatus(ctx context.Context, g *gamodels.Giveaway) gamodels.CVStatus {
	return f.status
}

func TestEnrichUsesReceiptClassifierForWins(t *testing.T) {
	svc := NewEnrichmentService(fixedReceipts{status: gamodels.CVReduced})

	g := endedGiveaway("rec01", "creator", gamodels.Winner{Name: strPtr("alice"), Status: gamodels.WinnerReceived})
	g.CVStatus = gamodels.CVFull

	member := &models.Member{Username: "alice"}
	svc.Enrich(context.Background(), member, []*gamodels.Giveaway{g}, sheets.NewFeed(nil), testNow)

	require.Len(t, member.GiveawaysWon, 1)
	assert.Equal(t, gamodels.CVReduced, member.GiveawaysWon[0].CVStatus,
		"winner side is scored at the end timestamp, not the creator's status")
	assert.Equal(t, gamodels.CVFull, g.CVStatus)
}
