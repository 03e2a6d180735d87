package domain

import (
	"context"
	"errors"
	"strconv"

	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/common"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xredis"
)

const maxLeaderBoardSize = 100

type StatisticDomain interface {
	GetLeaderBoard(ctx context.Context, req *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
	GetDayStats(ctx context.Context, req *model.GetDayStatsRequest) (*model.GetDayStatsResponse, error)
}

type statisticDomain struct {
	voteRepo     repository.VoteRepository
	dayStatsRepo repository.DayStatsRepository
	dayClock     *dateutil.DayClock
	redisClient  xredis.Client

	// Past days never change, their boards are cached after the first query.
	pastLeaderBoard *xsync.MapOf[string, []repository.DayVoterStat]
}

func NewStatisticDomain(
	voteRepo repository.VoteRepository,
	dayStatsRepo repository.DayStatsRepository,
	dayClock *dateutil.DayClock,
	redisClient xredis.Client,
) StatisticDomain {
	return &statisticDomain{
		voteRepo:        voteRepo,
		dayStatsRepo:    dayStatsRepo,
		dayClock:        dayClock,
		redisClient:     redisClient,
		pastLeaderBoard: xsync.NewMapOf[[]repository.DayVoterStat](),
	}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	currentDay := d.dayClock.CurrentDay()
	if req.Day > currentDay {
		return nil, errorx.New(errorx.BadRequest, "Day is in the future")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > maxLeaderBoardSize {
		limit = maxLeaderBoardSize
	}

	var stats []repository.DayVoterStat
	if req.Day == currentDay {
		stats = d.currentDayBoard(ctx, req.Day, limit)
	} else {
		var err error
		stats, err = d.pastDayBoard(ctx, req.Day)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
			return nil, errorx.Unknown
		}
	}

	if len(stats) > limit {
		stats = stats[:limit]
	}

	resp := &model.GetLeaderBoardResponse{Day: req.Day, LeaderBoard: []model.LeaderBoardEntry{}}
	for _, s := range stats {
		resp.LeaderBoard = append(resp.LeaderBoard, model.LeaderBoardEntry{
			UserID: s.UserID,
			Points: s.Points,
		})
	}

	return resp, nil
}

// currentDayBoard serves from redis and falls back to the database when
// redis is unavailable or empty.
func (d *statisticDomain) currentDayBoard(
	ctx context.Context, day int64, limit int,
) []repository.DayVoterStat {
	zs, err := d.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyLeaderBoard(day), 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get redis leaderboard: %v", err)
	} else if len(zs) > 0 {
		stats := make([]repository.DayVoterStat, 0, len(zs))
		for _, z := range zs {
			member, ok := z.Member.(string)
			if !ok {
				continue
			}

			stats = append(stats, repository.DayVoterStat{
				UserID: member,
				Points: uint64(z.Score),
			})
		}

		return stats
	}

	stats, err := d.voteRepo.GetDayVoterStats(ctx, day, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard from database: %v", err)
		return nil
	}

	return stats
}

func (d *statisticDomain) pastDayBoard(ctx context.Context, day int64) ([]repository.DayVoterStat, error) {
	key := strconv.FormatInt(day, 10)
	if cached, ok := d.pastLeaderBoard.Load(key); ok {
		return cached, nil
	}

	stats, err := d.voteRepo.GetDayVoterStats(ctx, day, maxLeaderBoardSize)
	if err != nil {
		return nil, err
	}

	d.pastLeaderBoard.Store(key, stats)
	return stats, nil
}

func (d *statisticDomain) GetDayStats(
	ctx context.Context, req *model.GetDayStatsRequest,
) (*model.GetDayStatsResponse, error) {
	if req.Day > d.dayClock.CurrentDay() {
		return nil, errorx.New(errorx.BadRequest, "Day is in the future")
	}

	resp := &model.GetDayStatsResponse{Day: req.Day}

	stats, err := d.dayStatsRepo.Get(ctx, req.Day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get day stats: %v", err)
		return nil, errorx.Unknown
	}

	resp.TotalPointsGiven = stats.TotalPointsGiven
	resp.TotalPointsSpent = stats.TotalPointsSpent
	resp.TotalRewardPool = stats.TotalRewardPool
	resp.TotalRewardClaimed = stats.TotalRewardClaimed
	resp.VoteCount = stats.VoteCount
	resp.ClaimCount = stats.ClaimCount
	return resp, nil
}
