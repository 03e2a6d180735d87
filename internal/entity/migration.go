package entity

import (
	"context"

	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Candidate{},
		&Mintpad{},
		&UserDayPoints{},
		&DayStats{},
		&CandidateVote{},
		&ClaimCheckpoint{},
	)
}
