package repository

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

type GetListCandidateFilter struct {
	EligibleOnly bool

	Offset int
	Limit  int
}

type CandidateRepository interface {
	Create(ctx context.Context, data *entity.Candidate) error
	UpdateByID(ctx context.Context, id string, data *entity.Candidate) error
	SetEligible(ctx context.Context, id string, eligible bool) error
	GetByID(ctx context.Context, id string) (*entity.Candidate, error)
	GetList(ctx context.Context, filter GetListCandidateFilter) ([]entity.Candidate, error)
}

type candidateRepository struct{}

func NewCandidateRepository() *candidateRepository {
	return &candidateRepository{}
}

func (r *candidateRepository) Create(ctx context.Context, data *entity.Candidate) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *candidateRepository) UpdateByID(ctx context.Context, id string, data *entity.Candidate) error {
	return xcontext.DB(ctx).
		Model(&entity.Candidate{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *candidateRepository) SetEligible(ctx context.Context, id string, eligible bool) error {
	return xcontext.DB(ctx).
		Model(&entity.Candidate{}).
		Where("id=?", id).
		Update("eligible", eligible).Error
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*entity.Candidate, error) {
	var result entity.Candidate
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *candidateRepository) GetList(
	ctx context.Context, filter GetListCandidateFilter,
) ([]entity.Candidate, error) {
	result := []entity.Candidate{}
	tx := xcontext.DB(ctx).Model(&entity.Candidate{})

	if filter.EligibleOnly {
		tx = tx.Where("eligible=?", true)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	if err := tx.Order("created_at ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
