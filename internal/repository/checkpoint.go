package repository

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClaimCheckpointRepository interface {
	Get(ctx context.Context, userID, candidateID string) (*entity.ClaimCheckpoint, error)

	// AdvanceFrom moves the checkpoint from fromDay to toDay, creating the
	// row on the first claim (fromDay < 0). It compares and swaps; when a
	// concurrent claim moved the checkpoint first, no row is affected and
	// gorm.ErrRecordNotFound is returned.
	AdvanceFrom(ctx context.Context, userID, candidateID string, fromDay, toDay int64) error
}

type claimCheckpointRepository struct{}

func NewClaimCheckpointRepository() *claimCheckpointRepository {
	return &claimCheckpointRepository{}
}

func (r *claimCheckpointRepository) Get(
	ctx context.Context, userID, candidateID string,
) (*entity.ClaimCheckpoint, error) {
	var result entity.ClaimCheckpoint
	err := xcontext.DB(ctx).
		Where("user_id=? AND candidate_id=?", userID, candidateID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *claimCheckpointRepository) AdvanceFrom(
	ctx context.Context, userID, candidateID string, fromDay, toDay int64,
) error {
	if fromDay < 0 {
		tx := xcontext.DB(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.ClaimCheckpoint{
				UserID:         userID,
				CandidateID:    candidateID,
				LastClaimedDay: toDay,
			})
		if tx.Error != nil {
			return tx.Error
		}

		if tx.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.ClaimCheckpoint{}).
		Where("user_id=? AND candidate_id=? AND last_claimed_day=?", userID, candidateID, fromDay).
		Update("last_claimed_day", toDay)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
