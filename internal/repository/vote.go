package repository

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DayVoterStat struct {
	UserID string
	Points uint64
}

type VoteRepository interface {
	// UpsertAdditive accumulates points into the (day, user, candidate) row,
	// creating it on the first vote.
	UpsertAdditive(ctx context.Context, data *entity.CandidateVote) error

	Get(ctx context.Context, day int64, userID, candidateID string) (*entity.CandidateVote, error)
	GetByUserDay(ctx context.Context, day int64, userID string) ([]entity.CandidateVote, error)

	// GetUserCandidateRange returns the user's votes for one candidate across
	// an inclusive day window, ordered by day.
	GetUserCandidateRange(ctx context.Context, userID, candidateID string, startDay, endDay int64) ([]entity.CandidateVote, error)

	GetDayVoterStats(ctx context.Context, day int64, limit int) ([]DayVoterStat, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) UpsertAdditive(ctx context.Context, data *entity.CandidateVote) error {
	return xcontext.DB(ctx).Model(&entity.CandidateVote{}).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "day"},
				{Name: "user_id"},
				{Name: "candidate_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"points": gorm.Expr("points + ?", data.Points),
			}),
		}).
		Create(data).Error
}

func (r *voteRepository) Get(
	ctx context.Context, day int64, userID, candidateID string,
) (*entity.CandidateVote, error) {
	var result entity.CandidateVote
	err := xcontext.DB(ctx).
		Where("day=? AND user_id=? AND candidate_id=?", day, userID, candidateID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) GetByUserDay(
	ctx context.Context, day int64, userID string,
) ([]entity.CandidateVote, error) {
	result := []entity.CandidateVote{}
	err := xcontext.DB(ctx).
		Where("day=? AND user_id=?", day, userID).
		Order("candidate_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) GetUserCandidateRange(
	ctx context.Context, userID, candidateID string, startDay, endDay int64,
) ([]entity.CandidateVote, error) {
	result := []entity.CandidateVote{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND candidate_id=? AND day >= ? AND day <= ?",
			userID, candidateID, startDay, endDay).
		Order("day ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) GetDayVoterStats(
	ctx context.Context, day int64, limit int,
) ([]DayVoterStat, error) {
	result := []DayVoterStat{}
	tx := xcontext.DB(ctx).
		Model(&entity.CandidateVote{}).
		Select("user_id, SUM(points) as points").
		Where("day=?", day).
		Group("user_id").
		Order("points DESC")

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
