package model

type LeaderBoardEntry struct {
	UserID string `json:"user_id"`
	Points uint64 `json:"points"`
}

type GetLeaderBoardRequest struct {
	Day   int64 `json:"day" form:"day"`
	Limit int   `json:"limit" form:"limit"`
}

type GetLeaderBoardResponse struct {
	Day         int64              `json:"day"`
	LeaderBoard []LeaderBoardEntry `json:"leaderboard"`
}

type GetDayStatsRequest struct {
	Day int64 `json:"day" form:"day"`
}

type GetDayStatsResponse struct {
	Day                int64  `json:"day"`
	TotalPointsGiven   uint64 `json:"total_points_given"`
	TotalPointsSpent   uint64 `json:"total_points_spent"`
	TotalRewardPool    uint64 `json:"total_reward_pool"`
	TotalRewardClaimed uint64 `json:"total_reward_claimed"`
	VoteCount          uint64 `json:"vote_count"`
	ClaimCount         uint64 `json:"claim_count"`
}
