package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Steemhunt/hunt-town-sub000/internal/common"
	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
)

func Test_statisticDomain_GetLeaderBoard_fromRedis(t *testing.T) {
	var queriedKey string
	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			queriedKey = key
			return []redis.Z{
				{Member: "user2", Score: 900},
				{Member: "user1", Score: 400},
			}, nil
		},
	}

	e := newTestEngine(redisClient)
	statisticDomain := NewStatisticDomain(e.voteRepo, e.dayStatsRepo, e.dayClock, redisClient)

	resp, err := statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, common.RedisKeyLeaderBoard(0), queriedKey)
	require.Equal(t, []model.LeaderBoardEntry{
		{UserID: "user2", Points: 900},
		{UserID: "user1", Points: 400},
	}, resp.LeaderBoard)
}

func Test_statisticDomain_GetLeaderBoard_redisFallback(t *testing.T) {
	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return nil, errors.New("connection refused")
		},
	}

	e := newTestEngine(redisClient)
	statisticDomain := NewStatisticDomain(e.voteRepo, e.dayStatsRepo, e.dayClock, redisClient)

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 400)

	user2 := e.as("user2")
	e.activate(t, user2, 1000)
	e.vote(t, user2, testutil.Candidate1, 900)

	// Redis down, the board comes straight from the votes table.
	resp, err := statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderBoardEntry{
		{UserID: "user2", Points: 900},
		{UserID: "user1", Points: 400},
	}, resp.LeaderBoard)
}

func Test_statisticDomain_GetLeaderBoard_pastDayCached(t *testing.T) {
	e := newTestEngine(nil)
	statisticDomain := NewStatisticDomain(
		e.voteRepo, e.dayStatsRepo, e.dayClock, &testutil.MockRedisClient{})

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 400)
	e.advanceDays(1)

	resp, err := statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderBoardEntry{{UserID: "user1", Points: 400}}, resp.LeaderBoard)

	// A later vote on the same day cannot happen, so the cached board stays
	// authoritative even if the underlying rows were tampered with.
	require.NoError(t, e.voteRepo.UpsertAdditive(e.ctx, &entity.CandidateVote{
		Day:         0,
		UserID:      "user2",
		CandidateID: testutil.Candidate1,
		Points:      999,
	}))

	resp, err = statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderBoardEntry{{UserID: "user1", Points: 400}}, resp.LeaderBoard)
}

func Test_statisticDomain_GetLeaderBoard_futureDay(t *testing.T) {
	e := newTestEngine(nil)
	statisticDomain := NewStatisticDomain(
		e.voteRepo, e.dayStatsRepo, e.dayClock, &testutil.MockRedisClient{})

	_, err := statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 7})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Day is in the future"))
}

func Test_statisticDomain_GetLeaderBoard_limit(t *testing.T) {
	e := newTestEngine(nil)
	statisticDomain := NewStatisticDomain(
		e.voteRepo, e.dayStatsRepo, e.dayClock, &testutil.MockRedisClient{})

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 400)

	user2 := e.as("user2")
	e.activate(t, user2, 1000)
	e.vote(t, user2, testutil.Candidate1, 900)

	resp, err := statisticDomain.GetLeaderBoard(e.ctx, &model.GetLeaderBoardRequest{Day: 0, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderBoardEntry{{UserID: "user2", Points: 900}}, resp.LeaderBoard)
}

func Test_statisticDomain_GetDayStats(t *testing.T) {
	e := newTestEngine(nil)
	statisticDomain := NewStatisticDomain(
		e.voteRepo, e.dayStatsRepo, e.dayClock, &testutil.MockRedisClient{})

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 400)

	resp, err := statisticDomain.GetDayStats(e.ctx, &model.GetDayStatsRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, &model.GetDayStatsResponse{
		Day:              0,
		TotalPointsGiven: 1000,
		TotalPointsSpent: 400,
		TotalRewardPool:  testutil.DailyRewardPool,
		VoteCount:        1,
	}, resp)

	// Days nobody touched read as all zeros.
	e.advanceDays(2)
	resp, err = statisticDomain.GetDayStats(e.ctx, &model.GetDayStatsRequest{Day: 1})
	require.NoError(t, err)
	require.Equal(t, &model.GetDayStatsResponse{Day: 1}, resp)

	_, err = statisticDomain.GetDayStats(e.ctx, &model.GetDayStatsRequest{Day: 9})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Day is in the future"))
}
