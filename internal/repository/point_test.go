package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/testutil"
)

func Test_pointRepository_Spend(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	require.NoError(t, repo.Create(ctx, &entity.UserDayPoints{
		Day:       0,
		UserID:    "user1",
		Activated: 500,
		Remaining: 500,
	}))

	require.NoError(t, repo.Spend(ctx, 0, "user1", 300))

	// Overspending the remaining 200 affects no row.
	err := repo.Spend(ctx, 0, "user1", 300)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Other days and users never match.
	err = repo.Spend(ctx, 1, "user1", 100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	points, err := repo.Get(ctx, 0, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(500), points.Activated)
	require.Equal(t, uint64(200), points.Remaining)
}

func Test_pointRepository_GrantAdditive(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewPointRepository()

	// Grant without prior activation creates the row.
	require.NoError(t, repo.GrantAdditive(ctx, 0, "user1", 250))

	points, err := repo.Get(ctx, 0, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(250), points.Activated)
	require.Equal(t, uint64(250), points.Remaining)

	// A second grant stacks on top, including on a partially spent balance.
	require.NoError(t, repo.Spend(ctx, 0, "user1", 100))
	require.NoError(t, repo.GrantAdditive(ctx, 0, "user1", 50))

	points, err = repo.Get(ctx, 0, "user1")
	require.NoError(t, err)
	require.Equal(t, uint64(300), points.Activated)
	require.Equal(t, uint64(200), points.Remaining)
}
