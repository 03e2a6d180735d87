package entity

import (
	"time"
)

// UserDayPoints is the per-day point balance of a user. Activated is the
// one-time ceiling set at activation; Remaining decreases as votes spend
// points and never exceeds Activated.
type UserDayPoints struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	Day int64 `gorm:"primaryKey;autoIncrement:false"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Activated uint64
	Remaining uint64
}
