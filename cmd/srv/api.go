package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/Steemhunt/hunt-town-sub000/internal/middleware"
	"github.com/Steemhunt/hunt-town-sub000/pkg/router"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadDayClock()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadMintClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	router.GET(s.router, "/wallet/login", s.authDomain.WalletLogin)
	router.GET(s.router, "/wallet/verify", s.authDomain.WalletVerify)

	// These following APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	{
		// Point API
		router.POST(authRouter, "/activatePoints", s.pointDomain.Activate)
		router.GET(authRouter, "/getMyPoints", s.pointDomain.GetMyPoints)

		// Vote API
		router.POST(authRouter, "/vote", s.voteDomain.Vote)
		router.GET(authRouter, "/getMyVotes", s.voteDomain.GetMyVotes)

		// Reward API
		router.GET(authRouter, "/getClaimable", s.rewardDomain.GetClaimable)
		router.GET(authRouter, "/getClaimableList", s.rewardDomain.GetClaimableList)
		router.POST(authRouter, "/claim", s.rewardDomain.Claim)

		// Candidate API (owner only)
		router.POST(authRouter, "/createCandidate", s.candidateDomain.Create)
		router.POST(authRouter, "/updateCandidate", s.candidateDomain.Update)

		// Admin API (owner only)
		router.POST(authRouter, "/startRollOver", s.adminDomain.StartRollOver)
		router.POST(authRouter, "/finishRollOver", s.adminDomain.FinishRollOver)
		router.POST(authRouter, "/grantPoints", s.adminDomain.GrantPoints)
		router.POST(authRouter, "/setDailyRewardPool", s.adminDomain.SetDailyRewardPool)
	}

	// Public API.
	router.GET(s.router, "/getListCandidate", s.candidateDomain.GetList)
	router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	router.GET(s.router, "/getDayStats", s.statisticDomain.GetDayStats)
}
