package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

type AdminDomain interface {
	StartRollOver(ctx context.Context, req *model.StartRollOverRequest) (*model.StartRollOverResponse, error)
	FinishRollOver(ctx context.Context, req *model.FinishRollOverRequest) (*model.FinishRollOverResponse, error)
	GrantPoints(ctx context.Context, req *model.GrantPointsRequest) (*model.GrantPointsResponse, error)
	SetDailyRewardPool(ctx context.Context, req *model.SetDailyRewardPoolRequest) (*model.SetDailyRewardPoolResponse, error)
}

type adminDomain struct {
	mintpadRepo  repository.MintpadRepository
	userRepo     repository.UserRepository
	pointRepo    repository.PointRepository
	dayStatsRepo repository.DayStatsRepository
	dayClock     *dateutil.DayClock
}

func NewAdminDomain(
	mintpadRepo repository.MintpadRepository,
	userRepo repository.UserRepository,
	pointRepo repository.PointRepository,
	dayStatsRepo repository.DayStatsRepository,
	dayClock *dateutil.DayClock,
) AdminDomain {
	return &adminDomain{
		mintpadRepo:  mintpadRepo,
		userRepo:     userRepo,
		pointRepo:    pointRepo,
		dayStatsRepo: dayStatsRepo,
		dayClock:     dayClock,
	}
}

func (d *adminDomain) StartRollOver(
	ctx context.Context, req *model.StartRollOverRequest,
) (*model.StartRollOverResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	err := d.mintpadRepo.SetMode(ctx, entity.MintpadOpen, entity.MintpadRollingOver)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RollOverInProgress, "Roll-over has already started")
		}

		xcontext.Logger(ctx).Errorf("Cannot start roll-over: %v", err)
		return nil, errorx.Unknown
	}

	return &model.StartRollOverResponse{}, nil
}

func (d *adminDomain) FinishRollOver(
	ctx context.Context, req *model.FinishRollOverRequest,
) (*model.FinishRollOverResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	err := d.mintpadRepo.SetMode(ctx, entity.MintpadRollingOver, entity.MintpadOpen)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RollOverNotInProgress, "Roll-over has not started")
		}

		xcontext.Logger(ctx).Errorf("Cannot finish roll-over: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FinishRollOverResponse{}, nil
}

func (d *adminDomain) GrantPoints(
	ctx context.Context, req *model.GrantPointsRequest,
) (*model.GrantPointsResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	if len(req.Grants) == 0 {
		return nil, errorx.New(errorx.BadRequest, "No grants given")
	}

	mintpad, err := d.mintpadRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mintpad: %v", err)
		return nil, errorx.Unknown
	}

	if mintpad.Mode != entity.MintpadRollingOver {
		return nil, errorx.New(errorx.RollOverNotInProgress,
			"Granting points requires an active roll-over")
	}

	day := d.dayClock.CurrentDay()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var totalGranted uint64
	grantedAddresses := []string{}
	for _, grant := range req.Grants {
		if grant.Amount == 0 {
			return nil, errorx.New(errorx.InvalidAmount, "Grant amount must be positive")
		}

		if !common.IsHexAddress(grant.Address) {
			return nil, errorx.New(errorx.BadRequest, "Invalid wallet address %s", grant.Address)
		}

		if slices.Contains(grantedAddresses, grant.Address) {
			return nil, errorx.New(errorx.BadRequest, "Duplicated grant address %s", grant.Address)
		}
		grantedAddresses = append(grantedAddresses, grant.Address)

		user, err := d.userRepo.GetByAddress(ctx, grant.Address)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
				return nil, errorx.Unknown
			}

			user = &entity.User{
				Base:    entity.Base{ID: uuid.NewString()},
				Address: grant.Address,
				Name:    grant.Address,
			}

			if err := d.userRepo.Create(ctx, user); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
				return nil, errorx.Unknown
			}
		}

		if err := d.pointRepo.GrantAdditive(ctx, day, user.ID, grant.Amount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grant points: %v", err)
			return nil, errorx.Unknown
		}

		totalGranted += grant.Amount
	}

	if err := d.dayStatsRepo.EnsureDay(ctx, day, mintpad.DailyRewardPool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure day stats: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.AddPointsGiven(ctx, day, totalGranted); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add points given to day stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.GrantPointsResponse{Granted: len(req.Grants)}, nil
}

func (d *adminDomain) SetDailyRewardPool(
	ctx context.Context, req *model.SetDailyRewardPoolRequest,
) (*model.SetDailyRewardPoolResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "Reward pool must be positive")
	}

	// Days already sealed keep their pool. The new value applies from the
	// next day that gets sealed.
	if err := d.mintpadRepo.SetDailyRewardPool(ctx, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set daily reward pool: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetDailyRewardPoolResponse{}, nil
}
