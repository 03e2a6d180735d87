package entity

import (
	"time"
)

// CandidateVote accumulates the points a user allocated to a candidate on a
// day. Multiple votes on the same (day, user, candidate) add up in one row.
type CandidateVote struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	Day int64 `gorm:"primaryKey;autoIncrement:false"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CandidateID string    `gorm:"primaryKey"`
	Candidate   Candidate `gorm:"foreignKey:CandidateID"`

	Points uint64
}
