package cron

import (
	"context"
	"time"

	"github.com/Steemhunt/hunt-town-sub000/internal/common"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xredis"
)

// DayStartCronJob seals the reward pool of the day that just started and
// drops redis leaderboards the API no longer serves.
type DayStartCronJob struct {
	mintpadRepo  repository.MintpadRepository
	dayStatsRepo repository.DayStatsRepository
	dayClock     *dateutil.DayClock
	redisClient  xredis.Client
}

func NewDayStartCronJob(
	mintpadRepo repository.MintpadRepository,
	dayStatsRepo repository.DayStatsRepository,
	dayClock *dateutil.DayClock,
	redisClient xredis.Client,
) *DayStartCronJob {
	return &DayStartCronJob{
		mintpadRepo:  mintpadRepo,
		dayStatsRepo: dayStatsRepo,
		dayClock:     dayClock,
		redisClient:  redisClient,
	}
}

func (job *DayStartCronJob) Do(ctx context.Context) {
	mintpad, err := job.mintpadRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mintpad: %v", err)
		return
	}

	day := job.dayClock.CurrentDay()
	if err := job.dayStatsRepo.EnsureDay(ctx, day, mintpad.DailyRewardPool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot seal day %d stats: %v", day, err)
		return
	}

	// Only the current day is served from redis, so the board of two days
	// ago can go.
	if day >= 2 {
		if err := job.redisClient.Del(ctx, common.RedisKeyLeaderBoard(day-2)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete stale leaderboard: %v", err)
		}
	}
}

func (job *DayStartCronJob) RunNow() bool {
	return true
}

func (job *DayStartCronJob) Next() time.Time {
	return job.dayClock.NextDayStart()
}
