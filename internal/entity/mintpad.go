package entity

import (
	"time"

	"github.com/Steemhunt/hunt-town-sub000/pkg/enum"
)

type MintpadMode string

var (
	MintpadOpen        = enum.New(MintpadMode("open"))
	MintpadRollingOver = enum.New(MintpadMode("rolling_over"))
)

// Mintpad is the singleton aggregate of the voting and reward engine. Mode
// gates voting against administrative point mutation; GenesisTimestamp is set
// once and anchors the day sequence.
type Mintpad struct {
	ID        int `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Mode             MintpadMode
	GenesisTimestamp int64
	DailyRewardPool  uint64
}

const MintpadSingletonID = 1
