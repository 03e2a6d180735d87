package cron

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/Steemhunt/hunt-town-sub000/internal/common"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
)

func Test_DayStartCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)

	genesis := time.Unix(testutil.GenesisTimestamp, 0).UTC()
	clock := clockwork.NewFakeClockAt(genesis.Add(time.Hour))
	dayClock := dateutil.NewDayClock(genesis, clock)

	deleted := []string{}
	redisClient := &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	mintpadRepo := repository.NewMintpadRepository()
	dayStatsRepo := repository.NewDayStatsRepository()
	job := NewDayStartCronJob(mintpadRepo, dayStatsRepo, dayClock, redisClient)

	require.True(t, job.RunNow())
	require.Equal(t, genesis.Add(24*time.Hour), job.Next())

	job.Do(ctx)

	// Day 0 is sealed with the configured pool and no board is old enough to
	// drop yet.
	stats, err := dayStatsRepo.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, testutil.DailyRewardPool, stats.TotalRewardPool)
	require.Empty(t, deleted)

	// A pool change between runs only affects days sealed afterwards.
	require.NoError(t, mintpadRepo.SetDailyRewardPool(ctx, 7777))
	job.Do(ctx)

	stats, err = dayStatsRepo.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, testutil.DailyRewardPool, stats.TotalRewardPool)

	clock.Advance(48 * time.Hour)
	job.Do(ctx)

	stats, err = dayStatsRepo.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(7777), stats.TotalRewardPool)
	require.Equal(t, []string{common.RedisKeyLeaderBoard(0)}, deleted)
}
