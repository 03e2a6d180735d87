package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()

	// The singleton is created once with the configured genesis. Re-running
	// the migration never overwrites it.
	return repository.NewMintpadRepository().Seed(s.ctx, &entity.Mintpad{
		ID:               entity.MintpadSingletonID,
		Mode:             entity.MintpadOpen,
		GenesisTimestamp: s.configs.Mintpad.GenesisTimestamp,
		DailyRewardPool:  s.configs.Mintpad.DailyRewardPool,
	})
}
