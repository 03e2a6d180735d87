package dateutil

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const SecondsPerDay int64 = 86400

// DayClock derives the reward day index from wall-clock time. The anchor is
// the deployment timestamp rounded down to UTC midnight and never changes
// afterwards.
type DayClock struct {
	anchor int64
	clock  clockwork.Clock
}

func NewDayClock(genesis time.Time, clock clockwork.Clock) *DayClock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &DayClock{
		anchor: (genesis.Unix() / SecondsPerDay) * SecondsPerDay,
		clock:  clock,
	}
}

// Anchor returns the UTC-midnight timestamp the day sequence counts from.
func (c *DayClock) Anchor() int64 {
	return c.anchor
}

// CurrentDay returns the index of the day in progress: 0 on the deployment
// day, increasing by one every 86400 seconds.
func (c *DayClock) CurrentDay() int64 {
	return c.DayAt(c.clock.Now())
}

func (c *DayClock) DayAt(t time.Time) int64 {
	day := (t.Unix() - c.anchor) / SecondsPerDay
	if day < 0 {
		return 0
	}

	return day
}

// NextDayStart returns the wall-clock time at which the next day begins.
func (c *DayClock) NextDayStart() time.Time {
	next := c.anchor + (c.CurrentDay()+1)*SecondsPerDay
	return time.Unix(next, 0).UTC()
}

func (c *DayClock) Now() time.Time {
	return c.clock.Now()
}
