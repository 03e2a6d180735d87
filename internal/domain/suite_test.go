package domain

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xredis"
)

type testEngine struct {
	ctx   context.Context
	clock clockwork.FakeClock

	dayClock   *dateutil.DayClock
	mintClient *testutil.MockMintClient
	publisher  *testutil.MockPublisher

	mintpadRepo    repository.MintpadRepository
	userRepo       repository.UserRepository
	candidateRepo  repository.CandidateRepository
	pointRepo      repository.PointRepository
	voteRepo       repository.VoteRepository
	dayStatsRepo   repository.DayStatsRepository
	checkpointRepo repository.ClaimCheckpointRepository

	pointDomain     PointDomain
	voteDomain      VoteDomain
	rewardDomain    RewardDomain
	adminDomain     AdminDomain
	candidateDomain CandidateDomain
}

func newTestEngine(redisClient xredis.Client) *testEngine {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixture(ctx)

	genesis := time.Unix(testutil.GenesisTimestamp, 0).UTC()
	clock := clockwork.NewFakeClockAt(genesis.Add(time.Hour))
	dayClock := dateutil.NewDayClock(genesis, clock)

	e := &testEngine{
		ctx:        ctx,
		clock:      clock,
		dayClock:   dayClock,
		mintClient: &testutil.MockMintClient{},
		publisher:  &testutil.MockPublisher{},

		mintpadRepo:    repository.NewMintpadRepository(),
		userRepo:       repository.NewUserRepository(),
		candidateRepo:  repository.NewCandidateRepository(),
		pointRepo:      repository.NewPointRepository(),
		voteRepo:       repository.NewVoteRepository(),
		dayStatsRepo:   repository.NewDayStatsRepository(),
		checkpointRepo: repository.NewClaimCheckpointRepository(),
	}

	if redisClient == nil {
		redisClient = &testutil.MockRedisClient{}
	}

	e.pointDomain = NewPointDomain(
		e.mintpadRepo, e.userRepo, e.pointRepo, e.dayStatsRepo, e.dayClock, e.publisher)
	e.voteDomain = NewVoteDomain(
		e.mintpadRepo, e.candidateRepo, e.pointRepo, e.voteRepo, e.dayStatsRepo,
		e.dayClock, redisClient, e.publisher)
	e.rewardDomain = NewRewardDomain(
		e.mintpadRepo, e.candidateRepo, e.userRepo, e.voteRepo, e.dayStatsRepo,
		e.checkpointRepo, e.dayClock, e.mintClient, e.publisher)
	e.adminDomain = NewAdminDomain(
		e.mintpadRepo, e.userRepo, e.pointRepo, e.dayStatsRepo, e.dayClock)
	e.candidateDomain = NewCandidateDomain(e.candidateRepo, e.userRepo)

	return e
}

func (e *testEngine) as(userID string) context.Context {
	return xcontext.WithRequestUserID(e.ctx, userID)
}

func (e *testEngine) advanceDays(n int64) {
	e.clock.Advance(time.Duration(n) * 24 * time.Hour)
}

// activate signs a valid endorsement for the requesting user and runs the
// activation.
func (e *testEngine) activate(t *testing.T, ctx context.Context, amount uint64) {
	user, err := e.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	require.NoError(t, err)

	day := e.dayClock.CurrentDay()
	message := activationMessage(
		common.HexToAddress(user.Address), day, amount, user.ActivationNonce)

	_, err = e.pointDomain.Activate(ctx, &model.ActivatePointsRequest{
		Day:       day,
		Amount:    amount,
		Signature: testutil.SignPersonal(testutil.AuthorizerKey, message),
	})
	require.NoError(t, err)
}

func (e *testEngine) vote(t *testing.T, ctx context.Context, candidateID string, points uint64) {
	_, err := e.voteDomain.Vote(ctx, &model.VoteRequest{
		CandidateID: candidateID,
		Points:      points,
	})
	require.NoError(t, err)
}
