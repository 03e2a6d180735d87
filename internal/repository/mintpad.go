package repository

import (
	"context"
	"errors"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MintpadRepository interface {
	Get(ctx context.Context) (*entity.Mintpad, error)
	Seed(ctx context.Context, data *entity.Mintpad) error
	SetMode(ctx context.Context, from, to entity.MintpadMode) error
	SetDailyRewardPool(ctx context.Context, amount uint64) error
}

type mintpadRepository struct{}

func NewMintpadRepository() *mintpadRepository {
	return &mintpadRepository{}
}

func (r *mintpadRepository) Get(ctx context.Context) (*entity.Mintpad, error) {
	var result entity.Mintpad
	err := xcontext.DB(ctx).Take(&result, "id=?", entity.MintpadSingletonID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Seed creates the singleton row if it does not exist yet. The genesis
// timestamp is written exactly once.
func (r *mintpadRepository) Seed(ctx context.Context, data *entity.Mintpad) error {
	data.ID = entity.MintpadSingletonID
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data).Error
}

// SetMode transitions the roll-over state machine. The update only applies if
// the current mode equals the expected one, so an out-of-order transition
// affects no row and is reported as gorm.ErrRecordNotFound.
func (r *mintpadRepository) SetMode(ctx context.Context, from, to entity.MintpadMode) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Mintpad{}).
		Where("id=? AND mode=?", entity.MintpadSingletonID, from).
		Update("mode", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *mintpadRepository) SetDailyRewardPool(ctx context.Context, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Mintpad{}).
		Where("id=?", entity.MintpadSingletonID).
		Update("daily_reward_pool", amount)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
