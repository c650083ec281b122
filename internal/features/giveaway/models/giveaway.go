package models

// WinnerStatus is the feedback state of a single winner slot.
type WinnerStatus string

const (
	WinnerReceived         WinnerStatus = "received"
	WinnerNotReceived      WinnerStatus = "not_received"
	WinnerAwaitingFeedback WinnerStatus = "awaiting_feedback"
)

// Winner is one winner slot of an ended giveaway. Name is nil for
// anonymous winners still awaiting feedback.
type Winner struct {
	Name   *string      `json:"name"`
	Status WinnerStatus `json:"status"`
}

// Activated reports whether the winner has a known name and marked the
// gift as received.
func (w Winner) Activated() bool {
	return w.Name != nil && w.Status == WinnerReceived
}

// CVStatus is the community-value tier of a giveaway.
type CVStatus string

const (
	CVFull    CVStatus = "FULL_CV"
	CVReduced CVStatus = "REDUCED_CV"
	CVNone    CVStatus = "NO_CV"
)

// CVState tells whether a giveaway has been through classification.
// Once classified, the status is never recomputed.
type CVState string

const (
	CVStateUnclassified CVState = "unclassified"
	CVStateClassified   CVState = "classified"
)

// Giveaway is one scraped giveaway, persisted indefinitely keyed by ID.
type Giveaway struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Points           int      `json:"points"`
	Copies           int      `json:"copies"`
	AppID            *int     `json:"app_id"`
	PackageID        *int     `json:"package_id"`
	Link             string   `json:"link"`
	CreatedTimestamp int64    `json:"created_timestamp"`
	StartTimestamp   int64    `json:"start_timestamp"`
	EndTimestamp     int64    `json:"end_timestamp"`
	RegionRestricted bool     `json:"region_restricted,omitempty"`
	InviteOnly       bool     `json:"invite_only,omitempty"`
	Whitelist        bool     `json:"whitelist,omitempty"`
	CommentCount     int      `json:"comment_count"`
	EntryCount       int      `json:"entry_count"`
	Creator          string   `json:"creator"`
	CVState          CVState  `json:"cv_state"`
	CVStatus         CVStatus `json:"cv_status,omitempty"`
	HasWinners       bool     `json:"has_winners"`
	Winners          []Winner `json:"winners,omitempty"`
	RequiredPlay     bool     `json:"required_play,omitempty"`
	IsShared         bool     `json:"is_shared,omitempty"`
	EventType        string   `json:"event_type,omitempty"`
}

// Ended reports whether the giveaway's end timestamp has passed.
func (g *Giveaway) Ended(now int64) bool {
	return g.EndTimestamp > 0 && g.EndTimestamp < now
}

// Classified reports whether a CV status has already been assigned.
func (g *Giveaway) Classified() bool {
	return g.CVState == CVStateClassified
}

// EffectiveCVStatus returns the assigned status, defaulting to FULL_CV
// for giveaways that have not been classified yet.
func (g *Giveaway) EffectiveCVStatus() CVStatus {
	if g.Classified() && g.CVStatus != "" {
		return g.CVStatus
	}
	return CVFull
}
