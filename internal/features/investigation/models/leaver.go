package models

// Entry is one entrant row scraped off a giveaway's entry list.
// JoinedAt stays a string exactly as scraped; the leaver record carries
// it verbatim.
type Entry struct {
	Username string `json:"username"`
	JoinedAt string `json:"joined_at"`
}

// LeaverRecord marks one detected leave from one giveaway's entry list.
// TimeDifferenceHours is the rounded distance from detection to the
// giveaway's end. A record is never created without the original
// joined_at.
type LeaverRecord struct {
	JoinedAt            string `json:"joined_at_timestamp"`
	GALink              string `json:"ga_link"`
	LeaveDetectedAt     int64  `json:"leave_detected_at"`
	TimeDifferenceHours int64  `json:"time_difference_hours"`
}
