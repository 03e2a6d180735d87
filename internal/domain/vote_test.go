package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
)

func Test_voteDomain_Vote(t *testing.T) {
	incremented := map[string]int64{}
	redisClient := &testutil.MockRedisClient{
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			incremented[member] += incr
			return nil
		},
	}

	e := newTestEngine(redisClient)
	e.activate(t, e.ctx, 1000)

	resp, err := e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      300,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.Day)
	require.Equal(t, uint64(700), resp.Remaining)

	// Voting again accumulates into the same row.
	e.vote(t, e.ctx, testutil.Candidate1, 200)

	vote, err := e.voteRepo.Get(e.ctx, 0, "user1", testutil.Candidate1)
	require.NoError(t, err)
	require.Equal(t, uint64(500), vote.Points)

	stats, err := e.dayStatsRepo.Get(e.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(500), stats.TotalPointsSpent)
	require.Equal(t, uint64(2), stats.VoteCount)

	require.Equal(t, int64(500), incremented["user1"])
}

func Test_voteDomain_Vote_insufficientPoints(t *testing.T) {
	e := newTestEngine(nil)

	// Not activated at all.
	_, err := e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.InsufficientPoints, "Not enough remaining points"))

	// Activated but balance too low.
	e.activate(t, e.ctx, 50)
	_, err = e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.InsufficientPoints, "Not enough remaining points"))

	// The failed votes left the balance untouched.
	points, err := e.pointRepo.Get(e.ctx, 0, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(50), points.Remaining)
}

func Test_voteDomain_Vote_ineligibleCandidate(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)

	require.NoError(t, e.candidateRepo.SetEligible(e.ctx, testutil.Candidate1, false))

	_, err := e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Candidate is not eligible"))

	_, err = e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: "no-such-candidate",
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found candidate"))
}

func Test_voteDomain_Vote_duringRollOver(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)

	err := e.mintpadRepo.SetMode(e.ctx, entity.MintpadOpen, entity.MintpadRollingOver)
	require.NoError(t, err)

	_, err = e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.RollOverInProgress, "Voting is locked during roll-over"))
}

func Test_voteDomain_Vote_pointsDoNotCarryOver(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.advanceDays(1)

	// Yesterday's remaining balance is unusable today.
	_, err := e.voteDomain.Vote(e.ctx, &model.VoteRequest{
		CandidateID: testutil.Candidate1,
		Points:      100,
	})
	require.ErrorIs(t, err, errorx.New(errorx.InsufficientPoints, "Not enough remaining points"))
}

func Test_voteDomain_GetMyVotes(t *testing.T) {
	e := newTestEngine(nil)
	e.activate(t, e.ctx, 1000)
	e.vote(t, e.ctx, testutil.Candidate1, 300)
	e.vote(t, e.ctx, testutil.Candidate2, 200)

	resp, err := e.voteDomain.GetMyVotes(e.ctx, &model.GetMyVotesRequest{Day: 0})
	require.NoError(t, err)
	require.Equal(t, []model.CandidateVote{
		{Day: 0, CandidateID: testutil.Candidate1, Points: 300},
		{Day: 0, CandidateID: testutil.Candidate2, Points: 200},
	}, resp.Votes)
}
