package domain

import (
	"encoding/json"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
)

func Test_rewardDomain_GetClaimable_soleVoter(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(2)

	// The sole voter owns the whole day-0 pool regardless of how much they
	// spent; the empty day 1 contributes nothing.
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ClaimableAmount)
	require.Equal(t, int64(1), resp.EndDay)
}

func Test_rewardDomain_GetClaimable_proRataSplit(t *testing.T) {
	e := newTestEngine(nil)

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 400)

	user2 := e.as("user2")
	e.activate(t, user2, 1000)
	e.vote(t, user2, testutil.Candidate1, 300)

	e.advanceDays(1)

	// 400/700 and 300/700 of the 1000 pool, floored.
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(571), resp.ClaimableAmount)

	resp, err = e.rewardDomain.GetClaimable(user2, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(428), resp.ClaimableAmount)
}

func Test_rewardDomain_GetClaimable_todayExcluded(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)

	// The day in progress has not settled yet.
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.ClaimableAmount)
	require.Equal(t, int64(0), resp.EndDay)
}

func Test_rewardDomain_GetClaimable_expiration(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)

	// On day 30 the day-0 reward is still inside the window.
	e.advanceDays(30)
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ClaimableAmount)

	// One day later it is forfeited.
	e.advanceDays(1)
	resp, err = e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.ClaimableAmount)
	require.Equal(t, int64(30), resp.EndDay)
}

func Test_rewardDomain_GetClaimable_partialExpiration(t *testing.T) {
	e := newTestEngine(nil)

	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)

	e.advanceDays(15)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 600)

	// At day 32 the day-0 vote has expired but day 15 is still claimable.
	e.advanceDays(17)
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ClaimableAmount)
	require.Equal(t, int64(31), resp.EndDay)
}

func Test_rewardDomain_Claim(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	resp, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ClaimableAmount)
	require.Equal(t, uint64(1000), resp.ActualSpent)
	require.Equal(t, int64(0), resp.EndDay)

	user, err := e.userRepo.GetByID(e.ctx, "user1")
	require.NoError(t, err)
	candidate, err := e.candidateRepo.GetByID(e.ctx, testutil.Candidate1)
	require.NoError(t, err)

	require.Len(t, e.mintClient.Mints, 1)
	require.Equal(t, ethcommon.HexToAddress(candidate.TokenAddress), e.mintClient.Mints[0].Token)
	require.Equal(t, ethcommon.HexToAddress(user.Address), e.mintClient.Mints[0].Receiver)
	require.Equal(t, uint64(1000), e.mintClient.Mints[0].MaxSpend)

	// The claim is attributed to the day it ran on.
	stats, err := e.dayStatsRepo.Get(e.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), stats.TotalRewardClaimed)
	require.Equal(t, uint64(1), stats.ClaimCount)

	checkpoint, err := e.checkpointRepo.Get(e.ctx, "user1", testutil.Candidate1)
	require.NoError(t, err)
	require.Equal(t, int64(0), checkpoint.LastClaimedDay)
}

func Test_rewardDomain_Claim_twice(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	_, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
	})
	require.NoError(t, err)

	_, err = e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NothingToClaim, "Nothing to claim"))
}

func Test_rewardDomain_Claim_excessiveLeftover(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	// Desiring an output worth half the budget wastes the rest.
	_, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 500,
	})
	require.ErrorIs(t, err, errorx.New(errorx.ExcessiveLeftover,
		"Desired output leaves too much of the claimable budget unspent"))

	// The rejection rolled everything back, the claim is still open.
	resp, err := e.rewardDomain.GetClaimable(e.ctx, &model.GetClaimableRequest{
		CandidateID: testutil.Candidate1,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ClaimableAmount)
}

func Test_rewardDomain_Claim_donationSplit(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	resp, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
		DonationBps:         2000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ActualSpent)

	candidate, err := e.candidateRepo.GetByID(e.ctx, testutil.Candidate1)
	require.NoError(t, err)
	user, err := e.userRepo.GetByID(e.ctx, "user1")
	require.NoError(t, err)

	// 20% to the beneficiary first, the remainder to the claimer.
	require.Len(t, e.mintClient.Mints, 2)
	require.Equal(t, ethcommon.HexToAddress(candidate.Beneficiary), e.mintClient.Mints[0].Receiver)
	require.Equal(t, uint64(200), e.mintClient.Mints[0].MaxSpend)
	require.Equal(t, uint64(200), e.mintClient.Mints[0].DesiredOutput)
	require.Equal(t, ethcommon.HexToAddress(user.Address), e.mintClient.Mints[1].Receiver)
	require.Equal(t, uint64(800), e.mintClient.Mints[1].MaxSpend)
	require.Equal(t, uint64(800), e.mintClient.Mints[1].DesiredOutput)

	pack := e.publisher.LastPublished(TopicClaimed)
	require.NotNil(t, pack)

	var event ClaimedEvent
	require.NoError(t, json.Unmarshal(pack.Msg, &event))
	require.Equal(t, ClaimedEvent{
		UserID:              "user1",
		CandidateID:         testutil.Candidate1,
		EndDay:              0,
		Spent:               1000,
		DesiredOutputAmount: 1000,
		DonationBps:         2000,
	}, event)
}

func Test_rewardDomain_Claim_fullDonation(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	resp, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
		DonationBps:         10000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), resp.ActualSpent)

	candidate, err := e.candidateRepo.GetByID(e.ctx, testutil.Candidate1)
	require.NoError(t, err)

	// The whole output goes to the beneficiary, no second mint is issued.
	require.Len(t, e.mintClient.Mints, 1)
	require.Equal(t, ethcommon.HexToAddress(candidate.Beneficiary), e.mintClient.Mints[0].Receiver)
	require.Equal(t, uint64(1000), e.mintClient.Mints[0].DesiredOutput)
	require.Equal(t, uint64(1000), e.mintClient.Mints[0].MaxSpend)
}

func Test_rewardDomain_Claim_duringRollOver(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	err := e.mintpadRepo.SetMode(e.ctx, entity.MintpadOpen, entity.MintpadRollingOver)
	require.NoError(t, err)

	_, err = e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
	})
	require.ErrorIs(t, err, errorx.New(errorx.RollOverInProgress,
		"Claiming is locked during roll-over"))
	require.Empty(t, e.mintClient.Mints)
}

func Test_rewardDomain_Claim_ineligibleCandidate(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 800)
	e.advanceDays(1)

	err := e.candidateRepo.SetEligible(e.ctx, testutil.Candidate1, false)
	require.NoError(t, err)

	_, err = e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 1000,
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Candidate is not eligible"))
	require.Empty(t, e.mintClient.Mints)
}

func Test_rewardDomain_Claim_multipleDays(t *testing.T) {
	e := newTestEngine(nil)

	for i := 0; i < 3; i++ {
		e.activate(t, e.ctx, 1000)
		e.vote(t, e.ctx, testutil.Candidate1, 500)
		e.advanceDays(1)
	}

	resp, err := e.rewardDomain.Claim(e.ctx, &model.ClaimRequest{
		CandidateID:         testutil.Candidate1,
		DesiredOutputAmount: 3000,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(3000), resp.ClaimableAmount)
	require.Equal(t, int64(2), resp.EndDay)
}

func Test_rewardDomain_GetClaimableList(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 300)
	e.vote(t, e.ctx, testutil.Candidate2, 300)
	e.advanceDays(1)

	resp, err := e.rewardDomain.GetClaimableList(e.ctx, &model.GetClaimableListRequest{})
	require.NoError(t, err)
	require.Equal(t, []model.ClaimableItem{
		{CandidateID: testutil.Candidate1, ClaimableAmount: 500, EndDay: 0},
		{CandidateID: testutil.Candidate2, ClaimableAmount: 500, EndDay: 0},
	}, resp.Claimables)
}
