package sheets

import "strings"

// PlayRequirement is one row of the play-required tab: a deadline-bound
// obligation attached to a specific win.
type PlayRequirement struct {
	RequirementsMet    bool   `json:"requirements_met"`
	IgnoreRequirements bool   `json:"ignore_requirements,omitempty"`
	Deadline           string `json:"deadline,omitempty"`
	DeadlineInMonths   int    `json:"deadline_in_months"`
	Notes              string `json:"notes,omitempty"`
}

// ProofRow is one proof-of-play attestation: a winner of a giveaway and
// whether they completed playing it. A giveaway id may carry several
// historical winner rows.
type ProofRow struct {
	GiveawayID      string           `json:"giveaway_id"`
	Game            string           `json:"game"`
	Winner          string           `json:"winner"`
	CompletePlaying bool             `json:"complete_playing"`
	ExtraPoints     int              `json:"extra_points"`
	PlayRequirement *PlayRequirement `json:"play_requirement,omitempty"`
}

// Feed is the proof-of-play dataset indexed by giveaway id.
type Feed struct {
	byID map[string][]ProofRow
}

func NewFeed(rows []ProofRow) *Feed {
	byID := make(map[string][]ProofRow)
	for _, row := range rows {
		byID[row.GiveawayID] = append(byID[row.GiveawayID], row)
	}
	return &Feed{byID: byID}
}

// Rows returns every attested winner row for a giveaway id.
func (f *Feed) Rows(giveawayID string) []ProofRow {
	if f == nil {
		return nil
	}
	return f.byID[giveawayID]
}

// Match finds the row for a specific winner of a giveaway, by trimmed,
// case-insensitive username equality.
func (f *Feed) Match(giveawayID, winner string) (ProofRow, bool) {
	want := strings.ToLower(strings.TrimSpace(winner))
	for _, row := range f.Rows(giveawayID) {
		if strings.ToLower(strings.TrimSpace(row.Winner)) == want {
			return row, true
		}
	}
	return ProofRow{}, false
}

// Len reports the number of distinct giveaway ids in the feed.
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.byID)
}
