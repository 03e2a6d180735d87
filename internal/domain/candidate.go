package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

type CandidateDomain interface {
	Create(ctx context.Context, req *model.CreateCandidateRequest) (*model.CreateCandidateResponse, error)
	Update(ctx context.Context, req *model.UpdateCandidateRequest) (*model.UpdateCandidateResponse, error)
	GetList(ctx context.Context, req *model.GetListCandidateRequest) (*model.GetListCandidateResponse, error)
}

type candidateDomain struct {
	candidateRepo repository.CandidateRepository
	userRepo      repository.UserRepository
}

func NewCandidateDomain(
	candidateRepo repository.CandidateRepository,
	userRepo repository.UserRepository,
) CandidateDomain {
	return &candidateDomain{candidateRepo: candidateRepo, userRepo: userRepo}
}

func (d *candidateDomain) Create(
	ctx context.Context, req *model.CreateCandidateRequest,
) (*model.CreateCandidateResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	if !common.IsHexAddress(req.TokenAddress) {
		return nil, errorx.New(errorx.BadRequest, "Invalid token address")
	}

	beneficiary := req.Beneficiary
	if beneficiary == "" {
		beneficiary = req.TokenAddress
	}

	if !common.IsHexAddress(beneficiary) {
		return nil, errorx.New(errorx.BadRequest, "Invalid beneficiary address")
	}

	candidate := &entity.Candidate{
		Base:         entity.Base{ID: uuid.NewString()},
		TokenAddress: req.TokenAddress,
		Name:         req.Name,
		Beneficiary:  beneficiary,
		Eligible:     true,
	}

	if err := d.candidateRepo.Create(ctx, candidate); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create candidate: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCandidateResponse{ID: candidate.ID}, nil
}

func (d *candidateDomain) Update(
	ctx context.Context, req *model.UpdateCandidateRequest,
) (*model.UpdateCandidateResponse, error) {
	if _, err := requireOwner(ctx, d.userRepo); err != nil {
		return nil, err
	}

	if _, err := d.candidateRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found candidate")
		}

		xcontext.Logger(ctx).Errorf("Cannot get candidate: %v", err)
		return nil, errorx.Unknown
	}

	if req.Beneficiary != "" && !common.IsHexAddress(req.Beneficiary) {
		return nil, errorx.New(errorx.BadRequest, "Invalid beneficiary address")
	}

	err := d.candidateRepo.UpdateByID(ctx, req.ID, &entity.Candidate{
		Name:        req.Name,
		Beneficiary: req.Beneficiary,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update candidate: %v", err)
		return nil, errorx.Unknown
	}

	if req.Eligible != nil {
		if err := d.candidateRepo.SetEligible(ctx, req.ID, *req.Eligible); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set candidate eligibility: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.UpdateCandidateResponse{}, nil
}

func (d *candidateDomain) GetList(
	ctx context.Context, req *model.GetListCandidateRequest,
) (*model.GetListCandidateResponse, error) {
	candidates, err := d.candidateRepo.GetList(ctx, repository.GetListCandidateFilter{
		EligibleOnly: req.EligibleOnly,
		Offset:       req.Offset,
		Limit:        req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get candidates: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListCandidateResponse{Candidates: []model.Candidate{}}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, model.Candidate{
			ID:           c.ID,
			TokenAddress: c.TokenAddress,
			Name:         c.Name,
			Beneficiary:  c.Beneficiary,
			Eligible:     c.Eligible,
		})
	}

	return resp, nil
}
