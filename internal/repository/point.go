package repository

import (
	"context"
	"errors"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointRepository interface {
	Create(ctx context.Context, data *entity.UserDayPoints) error
	Get(ctx context.Context, day int64, userID string) (*entity.UserDayPoints, error)
	Spend(ctx context.Context, day int64, userID string, amount uint64) error
	GrantAdditive(ctx context.Context, day int64, userID string, amount uint64) error
}

type pointRepository struct{}

func NewPointRepository() *pointRepository {
	return &pointRepository{}
}

func (r *pointRepository) Create(ctx context.Context, data *entity.UserDayPoints) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointRepository) Get(
	ctx context.Context, day int64, userID string,
) (*entity.UserDayPoints, error) {
	var result entity.UserDayPoints
	err := xcontext.DB(ctx).
		Where("day=? AND user_id=?", day, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Spend decrements the remaining balance. The guard in the WHERE clause keeps
// remaining non-negative; a shortfall affects no row and surfaces as
// gorm.ErrRecordNotFound.
func (r *pointRepository) Spend(
	ctx context.Context, day int64, userID string, amount uint64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserDayPoints{}).
		Where("day=? AND user_id=? AND remaining >= ?", day, userID, amount).
		Update("remaining", gorm.Expr("remaining-?", amount))

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

// GrantAdditive adds owner-granted points on top of whatever the user already
// has for the day, creating the row when absent.
func (r *pointRepository) GrantAdditive(
	ctx context.Context, day int64, userID string, amount uint64,
) error {
	return xcontext.DB(ctx).Model(&entity.UserDayPoints{}).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "day"},
				{Name: "user_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"activated": gorm.Expr("activated + ?", amount),
				"remaining": gorm.Expr("remaining + ?", amount),
			}),
		}).
		Create(&entity.UserDayPoints{
			Day:       day,
			UserID:    userID,
			Activated: amount,
			Remaining: amount,
		}).Error
}
