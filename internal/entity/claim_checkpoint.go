package entity

import (
	"time"
)

// ClaimCheckpoint records the last day (inclusive) a user settled rewards
// for a candidate. It only moves forward.
type ClaimCheckpoint struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CandidateID string    `gorm:"primaryKey"`
	Candidate   Candidate `gorm:"foreignKey:CandidateID"`

	LastClaimedDay int64
}
