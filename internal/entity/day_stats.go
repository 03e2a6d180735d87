package entity

import (
	"time"
)

// DayStats aggregates one reward day. TotalRewardPool is sealed when the row
// is created for the day in progress and is never modified afterwards.
// TotalRewardClaimed and ClaimCount are attributed to the day the claim runs
// on, not the days it accrued from.
type DayStats struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	Day int64 `gorm:"primaryKey;autoIncrement:false"`

	TotalPointsGiven   uint64
	TotalPointsSpent   uint64
	TotalRewardPool    uint64
	TotalRewardClaimed uint64
	VoteCount          uint64
	ClaimCount         uint64
}
