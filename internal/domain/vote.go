package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/common"
	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xredis"
)

type VoteDomain interface {
	Vote(ctx context.Context, req *model.VoteRequest) (*model.VoteResponse, error)
	GetMyVotes(ctx context.Context, req *model.GetMyVotesRequest) (*model.GetMyVotesResponse, error)
}

type voteDomain struct {
	mintpadRepo   repository.MintpadRepository
	candidateRepo repository.CandidateRepository
	pointRepo     repository.PointRepository
	voteRepo      repository.VoteRepository
	dayStatsRepo  repository.DayStatsRepository
	dayClock      *dateutil.DayClock
	redisClient   xredis.Client
	publisher     pubsub.Publisher
}

func NewVoteDomain(
	mintpadRepo repository.MintpadRepository,
	candidateRepo repository.CandidateRepository,
	pointRepo repository.PointRepository,
	voteRepo repository.VoteRepository,
	dayStatsRepo repository.DayStatsRepository,
	dayClock *dateutil.DayClock,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) VoteDomain {
	return &voteDomain{
		mintpadRepo:   mintpadRepo,
		candidateRepo: candidateRepo,
		pointRepo:     pointRepo,
		voteRepo:      voteRepo,
		dayStatsRepo:  dayStatsRepo,
		dayClock:      dayClock,
		redisClient:   redisClient,
		publisher:     publisher,
	}
}

func (d *voteDomain) Vote(ctx context.Context, req *model.VoteRequest) (*model.VoteResponse, error) {
	if req.Points == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "Points must be positive")
	}

	mintpad, err := d.mintpadRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mintpad: %v", err)
		return nil, errorx.Unknown
	}

	if mintpad.Mode != entity.MintpadOpen {
		return nil, errorx.New(errorx.RollOverInProgress, "Voting is locked during roll-over")
	}

	candidate, err := d.candidateRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found candidate")
		}

		xcontext.Logger(ctx).Errorf("Cannot get candidate: %v", err)
		return nil, errorx.Unknown
	}

	if !candidate.Eligible {
		return nil, errorx.New(errorx.BadRequest, "Candidate is not eligible")
	}

	userID := xcontext.RequestUserID(ctx)
	day := d.dayClock.CurrentDay()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.pointRepo.Spend(ctx, day, userID, req.Points)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientPoints, "Not enough remaining points")
		}

		xcontext.Logger(ctx).Errorf("Cannot spend points: %v", err)
		return nil, errorx.Unknown
	}

	err = d.voteRepo.UpsertAdditive(ctx, &entity.CandidateVote{
		Day:         day,
		UserID:      userID,
		CandidateID: candidate.ID,
		Points:      req.Points,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert vote: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.EnsureDay(ctx, day, mintpad.DailyRewardPool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure day stats: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.AddVote(ctx, day, req.Points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add vote to day stats: %v", err)
		return nil, errorx.Unknown
	}

	points, err := d.pointRepo.Get(ctx, day, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user day points: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	// The redis leaderboard is best-effort. Reads fall back to the database
	// when it is behind.
	err = d.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderBoard(day), int64(req.Points), userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot increase redis leaderboard: %v", err)
	}

	publishEvent(ctx, d.publisher, TopicVoted, userID, VotedEvent{
		UserID:      userID,
		CandidateID: candidate.ID,
		Day:         day,
		Points:      req.Points,
	})

	return &model.VoteResponse{
		Day:       day,
		Points:    req.Points,
		Remaining: points.Remaining,
	}, nil
}

func (d *voteDomain) GetMyVotes(
	ctx context.Context, req *model.GetMyVotesRequest,
) (*model.GetMyVotesResponse, error) {
	if req.Day > d.dayClock.CurrentDay() {
		return nil, errorx.New(errorx.BadRequest, "Day is in the future")
	}

	votes, err := d.voteRepo.GetByUserDay(ctx, req.Day, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get votes: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyVotesResponse{Votes: []model.CandidateVote{}}
	for _, v := range votes {
		resp.Votes = append(resp.Votes, model.CandidateVote{
			Day:         v.Day,
			CandidateID: v.CandidateID,
			Points:      v.Points,
		})
	}

	return resp, nil
}
