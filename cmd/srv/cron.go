package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Steemhunt/hunt-town-sub000/internal/domain/cron"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadDayClock()
	s.loadRedisClient()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewDayStartCronJob(
		s.mintpadRepo, s.dayStatsRepo, s.dayClock, s.redisClient))
	cronJobManager.Start(s.ctx)

	return nil
}
