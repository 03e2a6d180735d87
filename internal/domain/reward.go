package domain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/client"
	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

// RewardExpirationDays is the length of the claim window. Rewards accrued
// more than this many days before the current day are forfeited.
const RewardExpirationDays = 30

// MinClaimEfficiencyPercent rejects claims whose desired output leaves more
// than 2% of the claimable budget unspent.
const MinClaimEfficiencyPercent = 98

const donationBpsDenominator = 10000

type RewardDomain interface {
	GetClaimable(ctx context.Context, req *model.GetClaimableRequest) (*model.GetClaimableResponse, error)
	GetClaimableList(ctx context.Context, req *model.GetClaimableListRequest) (*model.GetClaimableListResponse, error)
	Claim(ctx context.Context, req *model.ClaimRequest) (*model.ClaimResponse, error)
}

type rewardDomain struct {
	mintpadRepo    repository.MintpadRepository
	candidateRepo  repository.CandidateRepository
	userRepo       repository.UserRepository
	voteRepo       repository.VoteRepository
	dayStatsRepo   repository.DayStatsRepository
	checkpointRepo repository.ClaimCheckpointRepository
	dayClock       *dateutil.DayClock
	mintClient     client.MintClient
	publisher      pubsub.Publisher
}

func NewRewardDomain(
	mintpadRepo repository.MintpadRepository,
	candidateRepo repository.CandidateRepository,
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
	dayStatsRepo repository.DayStatsRepository,
	checkpointRepo repository.ClaimCheckpointRepository,
	dayClock *dateutil.DayClock,
	mintClient client.MintClient,
	publisher pubsub.Publisher,
) RewardDomain {
	return &rewardDomain{
		mintpadRepo:    mintpadRepo,
		candidateRepo:  candidateRepo,
		userRepo:       userRepo,
		voteRepo:       voteRepo,
		dayStatsRepo:   dayStatsRepo,
		checkpointRepo: checkpointRepo,
		dayClock:       dayClock,
		mintClient:     mintClient,
		publisher:      publisher,
	}
}

// claimableOf sums the user's pro-rata share of every settled, unexpired,
// unclaimed day. The window ends at yesterday; today is still accruing.
func (d *rewardDomain) claimableOf(
	ctx context.Context, userID, candidateID string, lastClaimedDay int64,
) (uint64, int64, error) {
	currentDay := d.dayClock.CurrentDay()
	endDay := currentDay - 1

	startDay := lastClaimedDay + 1
	if floor := currentDay - RewardExpirationDays; floor > startDay {
		startDay = floor
	}
	if startDay < 0 {
		startDay = 0
	}

	if endDay < 0 {
		// No completed day exists yet.
		return 0, 0, nil
	}

	if startDay > endDay {
		return 0, endDay, nil
	}

	votes, err := d.voteRepo.GetUserCandidateRange(ctx, userID, candidateID, startDay, endDay)
	if err != nil {
		return 0, 0, err
	}

	if len(votes) == 0 {
		return 0, endDay, nil
	}

	stats, err := d.dayStatsRepo.GetRange(ctx, startDay, endDay)
	if err != nil {
		return 0, 0, err
	}

	statsByDay := map[int64]entity.DayStats{}
	for _, s := range stats {
		statsByDay[s.Day] = s
	}

	// Intermediate products of votes and pool can exceed 64 bits, so the
	// whole sum runs on big integers.
	total := new(big.Int)
	for _, v := range votes {
		s, ok := statsByDay[v.Day]
		if !ok || s.TotalPointsSpent == 0 || s.TotalRewardPool == 0 {
			continue
		}

		share := new(big.Int).Mul(
			new(big.Int).SetUint64(v.Points),
			new(big.Int).SetUint64(s.TotalRewardPool),
		)
		share.Quo(share, new(big.Int).SetUint64(s.TotalPointsSpent))
		total.Add(total, share)
	}

	if !total.IsUint64() {
		return 0, 0, fmt.Errorf("claimable amount overflows uint64")
	}

	return total.Uint64(), endDay, nil
}

func (d *rewardDomain) lastClaimedDay(ctx context.Context, userID, candidateID string) (int64, error) {
	checkpoint, err := d.checkpointRepo.Get(ctx, userID, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return -1, nil
		}

		return 0, err
	}

	return checkpoint.LastClaimedDay, nil
}

func (d *rewardDomain) GetClaimable(
	ctx context.Context, req *model.GetClaimableRequest,
) (*model.GetClaimableResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.candidateRepo.GetByID(ctx, req.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found candidate")
		}

		xcontext.Logger(ctx).Errorf("Cannot get candidate: %v", err)
		return nil, errorx.Unknown
	}

	lastClaimed, err := d.lastClaimedDay(ctx, userID, req.CandidateID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claim checkpoint: %v", err)
		return nil, errorx.Unknown
	}

	claimable, endDay, err := d.claimableOf(ctx, userID, req.CandidateID, lastClaimed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot calculate claimable amount: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetClaimableResponse{
		CandidateID:     req.CandidateID,
		ClaimableAmount: claimable,
		EndDay:          endDay,
	}, nil
}

func (d *rewardDomain) GetClaimableList(
	ctx context.Context, req *model.GetClaimableListRequest,
) (*model.GetClaimableListResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	candidateIDs := req.CandidateIDs
	if len(candidateIDs) == 0 {
		candidates, err := d.candidateRepo.GetList(ctx, repository.GetListCandidateFilter{})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get candidates: %v", err)
			return nil, errorx.Unknown
		}

		for _, c := range candidates {
			candidateIDs = append(candidateIDs, c.ID)
		}
	}

	resp := &model.GetClaimableListResponse{Claimables: []model.ClaimableItem{}}
	for _, candidateID := range candidateIDs {
		lastClaimed, err := d.lastClaimedDay(ctx, userID, candidateID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get claim checkpoint: %v", err)
			return nil, errorx.Unknown
		}

		claimable, endDay, err := d.claimableOf(ctx, userID, candidateID, lastClaimed)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot calculate claimable amount: %v", err)
			return nil, errorx.Unknown
		}

		resp.Claimables = append(resp.Claimables, model.ClaimableItem{
			CandidateID:     candidateID,
			ClaimableAmount: claimable,
			EndDay:          endDay,
		})
	}

	return resp, nil
}

func (d *rewardDomain) Claim(ctx context.Context, req *model.ClaimRequest) (*model.ClaimResponse, error) {
	if req.DonationBps > donationBpsDenominator {
		return nil, errorx.New(errorx.BadRequest, "Donation cannot exceed 10000 bps")
	}

	if req.DesiredOutputAmount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "Desired output must be positive")
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

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	mintpad, err := d.mintpadRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mintpad: %v", err)
		return nil, errorx.Unknown
	}

	if mintpad.Mode != entity.MintpadOpen {
		return nil, errorx.New(errorx.RollOverInProgress, "Claiming is locked during roll-over")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	lastClaimed, err := d.lastClaimedDay(ctx, user.ID, candidate.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claim checkpoint: %v", err)
		return nil, errorx.Unknown
	}

	claimable, endDay, err := d.claimableOf(ctx, user.ID, candidate.ID, lastClaimed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot calculate claimable amount: %v", err)
		return nil, errorx.Unknown
	}

	if claimable == 0 {
		return nil, errorx.New(errorx.NothingToClaim, "Nothing to claim")
	}

	// Compare and swap on the checkpoint. A concurrent claim that settled
	// the same window first makes this a no-op and the claim is rejected.
	err = d.checkpointRepo.AdvanceFrom(ctx, user.ID, candidate.ID, lastClaimed, endDay)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NothingToClaim, "Nothing to claim")
		}

		xcontext.Logger(ctx).Errorf("Cannot advance claim checkpoint: %v", err)
		return nil, errorx.Unknown
	}

	donationBudget := mulDivU64(claimable, req.DonationBps, donationBpsDenominator)
	donationDesired := mulDivU64(req.DesiredOutputAmount, req.DonationBps, donationBpsDenominator)

	token := ethcommon.HexToAddress(candidate.TokenAddress)

	var donationSpent uint64
	if donationBudget > 0 && donationDesired > 0 {
		donationSpent, err = d.mintClient.Mint(
			ctx, token, ethcommon.HexToAddress(candidate.Beneficiary),
			donationDesired, donationBudget)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mint donation slice: %v", err)
			return nil, errorx.Unknown
		}
	}

	var claimerSpent uint64
	if remainder := req.DesiredOutputAmount - donationDesired; remainder > 0 {
		claimerSpent, err = d.mintClient.Mint(
			ctx, token, ethcommon.HexToAddress(user.Address),
			remainder, claimable-donationSpent)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mint claimer slice: %v", err)
			return nil, errorx.Unknown
		}
	}

	totalSpent := donationSpent + claimerSpent
	spentScaled := new(big.Int).Mul(new(big.Int).SetUint64(totalSpent), big.NewInt(100))
	needScaled := new(big.Int).Mul(
		new(big.Int).SetUint64(claimable), big.NewInt(MinClaimEfficiencyPercent))
	if spentScaled.Cmp(needScaled) < 0 {
		return nil, errorx.New(errorx.ExcessiveLeftover,
			"Desired output leaves too much of the claimable budget unspent")
	}

	currentDay := d.dayClock.CurrentDay()
	if err := d.dayStatsRepo.EnsureDay(ctx, currentDay, mintpad.DailyRewardPool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure day stats: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dayStatsRepo.AddClaim(ctx, currentDay, totalSpent); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add claim to day stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	publishEvent(ctx, d.publisher, TopicClaimed, user.ID, ClaimedEvent{
		UserID:              user.ID,
		CandidateID:         candidate.ID,
		EndDay:              endDay,
		Spent:               totalSpent,
		DesiredOutputAmount: req.DesiredOutputAmount,
		DonationBps:         req.DonationBps,
	})

	return &model.ClaimResponse{
		CandidateID:         candidate.ID,
		EndDay:              endDay,
		ClaimableAmount:     claimable,
		ActualSpent:         totalSpent,
		DesiredOutputAmount: req.DesiredOutputAmount,
		DonationBps:         req.DonationBps,
	}, nil
}

// mulDivU64 computes a*b/c without overflowing the intermediate product.
func mulDivU64(a, b, c uint64) uint64 {
	result := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	result.Quo(result, new(big.Int).SetUint64(c))
	if !result.IsUint64() {
		return 0
	}

	return result.Uint64()
}
