package repository

import (
	"context"
	"errors"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DayStatsRepository interface {
	// EnsureDay creates the stats row of a day if it does not exist yet,
	// sealing the reward pool at creation time. An existing row is left
	// untouched.
	EnsureDay(ctx context.Context, day int64, rewardPool uint64) error

	Get(ctx context.Context, day int64) (*entity.DayStats, error)
	GetRange(ctx context.Context, startDay, endDay int64) ([]entity.DayStats, error)

	AddPointsGiven(ctx context.Context, day int64, amount uint64) error
	AddVote(ctx context.Context, day int64, points uint64) error
	AddClaim(ctx context.Context, day int64, spent uint64) error
}

type dayStatsRepository struct{}

func NewDayStatsRepository() *dayStatsRepository {
	return &dayStatsRepository{}
}

func (r *dayStatsRepository) EnsureDay(ctx context.Context, day int64, rewardPool uint64) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.DayStats{Day: day, TotalRewardPool: rewardPool}).Error
}

func (r *dayStatsRepository) Get(ctx context.Context, day int64) (*entity.DayStats, error) {
	var result entity.DayStats
	if err := xcontext.DB(ctx).Take(&result, "day=?", day).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *dayStatsRepository) GetRange(
	ctx context.Context, startDay, endDay int64,
) ([]entity.DayStats, error) {
	result := []entity.DayStats{}
	err := xcontext.DB(ctx).
		Where("day >= ? AND day <= ?", startDay, endDay).
		Order("day ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dayStatsRepository) AddPointsGiven(ctx context.Context, day int64, amount uint64) error {
	return r.update(ctx, day, map[string]any{
		"total_points_given": gorm.Expr("total_points_given+?", amount),
	})
}

func (r *dayStatsRepository) AddVote(ctx context.Context, day int64, points uint64) error {
	return r.update(ctx, day, map[string]any{
		"total_points_spent": gorm.Expr("total_points_spent+?", points),
		"vote_count":         gorm.Expr("vote_count+1"),
	})
}

func (r *dayStatsRepository) AddClaim(ctx context.Context, day int64, spent uint64) error {
	return r.update(ctx, day, map[string]any{
		"total_reward_claimed": gorm.Expr("total_reward_claimed+?", spent),
		"claim_count":          gorm.Expr("claim_count+1"),
	})
}

func (r *dayStatsRepository) update(ctx context.Context, day int64, values map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.DayStats{}).
		Where("day=?", day).
		Updates(values)

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
