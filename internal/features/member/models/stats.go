package models

// UserStats aggregates a member's giveaway activity. The platform
// totals at the top come straight from the scraped roster; everything
// below them is recomputed from the won/created lists every run.
type UserStats struct {
	TotalSentCount       int     `json:"total_sent_count"`
	TotalSentValue       float64 `json:"total_sent_value"`
	TotalReceivedCount   int     `json:"total_received_count"`
	TotalReceivedValue   float64 `json:"total_received_value"`
	TotalGiftDifference  int     `json:"total_gift_difference"`
	TotalValueDifference float64 `json:"total_value_difference"`

	FCVSentCount int `json:"fcv_sent_count"`
	RCVSentCount int `json:"rcv_sent_count"`
	NCVSentCount int `json:"ncv_sent_count"`

	FCVReceivedCount int `json:"fcv_received_count"`
	RCVReceivedCount int `json:"rcv_received_count"`
	NCVReceivedCount int `json:"ncv_received_count"`

	FCVGiftDifference int     `json:"fcv_gift_difference"`
	GiveawayRatio     float64 `json:"giveaway_ratio"`

	RealTotalSentValue       float64 `json:"real_total_sent_value"`
	RealTotalReceivedValue   float64 `json:"real_total_received_value"`
	RealTotalValueDifference float64 `json:"real_total_value_difference"`
	RealTotalSentCount       int     `json:"real_total_sent_count"`
	RealTotalReceivedCount   int     `json:"real_total_received_count"`
	RealTotalGiftDifference  int     `json:"real_total_gift_difference"`

	SharedSentCount     int `json:"shared_sent_count"`
	SharedReceivedCount int `json:"shared_received_count"`

	GiveawaysCreated       int    `json:"giveaways_created"`
	GiveawaysWithNoEntries int    `json:"giveaways_with_no_entries"`
	LastGiveawayCreatedAt  *int64 `json:"last_giveaway_created_at,omitempty"`
	LastGiveawayWonAt      *int64 `json:"last_giveaway_won_at,omitempty"`

	AverageAchievementsPercentage     float64 `json:"average_achievements_percentage"`
	TotalAchievementsPercentage       float64 `json:"total_achievements_percentage"`
	RealAverageAchievementsPercentage float64 `json:"real_average_achievements_percentage"`
	RealTotalAchievementsPercentage   float64 `json:"real_total_achievements_percentage"`
	HasMissingAchievementsData        bool    `json:"has_missing_achievements_data"`
}
