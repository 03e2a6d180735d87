package testutil

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/config"
	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/model"
	"github.com/Steemhunt/hunt-town-sub000/pkg/authenticator"
	"github.com/Steemhunt/hunt-town-sub000/pkg/logger"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

// GenesisTimestamp is already aligned to a UTC midnight so tests can reason
// about day boundaries without rounding.
const GenesisTimestamp = int64(1717200000)

const DailyRewardPool = uint64(1000)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			AccessTokenName: "access_token",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Mintpad: config.MintpadConfigs{
			GenesisTimestamp:  GenesisTimestamp,
			DailyRewardPool:   DailyRewardPool,
			AuthorizerAddress: AuthorizerAddress(),
			OwnerAddress:      OwnerAddress(),
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
