package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

type PointDomain interface {
	Activate(ctx context.Context, req *model.ActivatePointsRequest) (*model.ActivatePointsResponse, error)
	GetMyPoints(ctx context.Context, req *model.GetMyPointsRequest) (*model.GetMyPointsResponse, error)
}

type pointDomain struct {
	mintpadRepo  repository.MintpadRepository
	userRepo     repository.UserRepository
	pointRepo    repository.PointRepository
	dayStatsRepo repository.DayStatsRepository
	dayClock     *dateutil.DayClock
	publisher    pubsub.Publisher
}

func NewPointDomain(
	mintpadRepo repository.MintpadRepository,
	userRepo repository.UserRepository,
	pointRepo repository.PointRepository,
	dayStatsRepo repository.DayStatsRepository,
	dayClock *dateutil.DayClock,
	publisher pubsub.Publisher,
) PointDomain {
	return &pointDomain{
		mintpadRepo:  mintpadRepo,
		userRepo:     userRepo,
		pointRepo:    pointRepo,
		dayStatsRepo: dayStatsRepo,
		dayClock:     dayClock,
		publisher:    publisher,
	}
}

func (d *pointDomain) Activate(
	ctx context.Context, req *model.ActivatePointsRequest,
) (*model.ActivatePointsResponse, error) {
	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "Amount must be positive")
	}

	mintpad, err := d.mintpadRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mintpad: %v", err)
		return nil, errorx.Unknown
	}

	if mintpad.Mode != entity.MintpadOpen {
		return nil, errorx.New(errorx.RollOverInProgress,
			"Point activation is locked during roll-over")
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	day := d.dayClock.CurrentDay()
	if req.Day != day {
		return nil, errorx.New(errorx.BadRequest, "Endorsement is not for the current day")
	}

	message := activationMessage(
		common.HexToAddress(user.Address), day, req.Amount, user.ActivationNonce)
	recovered, err := recoverSignerAddress(message, req.Signature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recover signature to address: %v", err)
		return nil, errorx.New(errorx.InvalidSignature, "Invalid signature")
	}

	authorizer := common.HexToAddress(xcontext.Configs(ctx).Mintpad.AuthorizerAddress)
	if recovered != authorizer {
		return nil, errorx.New(errorx.InvalidSignature, "Endorsement is not signed by the authorizer")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err = d.pointRepo.Get(ctx, day, user.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyActivated, "Points already activated today")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user day points: %v", err)
		return nil, errorx.Unknown
	}

	err = d.pointRepo.Create(ctx, &entity.UserDayPoints{
		Day:       day,
		UserID:    user.ID,
		Activated: req.Amount,
		Remaining: req.Amount,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user day points: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseActivationNonce(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase activation nonce: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.EnsureDay(ctx, day, mintpad.DailyRewardPool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure day stats: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.AddPointsGiven(ctx, day, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points given to day stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	publishEvent(ctx, d.publisher, TopicActivated, user.ID, ActivatedEvent{
		UserID: user.ID,
		Day:    day,
		Amount: req.Amount,
	})

	return &model.ActivatePointsResponse{
		Day:       day,
		Activated: req.Amount,
		Remaining: req.Amount,
	}, nil
}

func (d *pointDomain) GetMyPoints(
	ctx context.Context, req *model.GetMyPointsRequest,
) (*model.GetMyPointsResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if req.Day > d.dayClock.CurrentDay() {
		return nil, errorx.New(errorx.BadRequest, "Day is in the future")
	}

	resp := &model.GetMyPointsResponse{Day: req.Day, Nonce: user.ActivationNonce}

	points, err := d.pointRepo.Get(ctx, req.Day, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user day points: %v", err)
			return nil, errorx.Unknown
		}

		return resp, nil
	}

	resp.Activated = points.Activated
	resp.Remaining = points.Remaining
	return resp, nil
}
