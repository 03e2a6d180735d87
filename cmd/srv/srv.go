package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Steemhunt/hunt-town-sub000/config"
	"github.com/Steemhunt/hunt-town-sub000/internal/client"
	"github.com/Steemhunt/hunt-town-sub000/internal/domain"
	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/dateutil"
	"github.com/Steemhunt/hunt-town-sub000/pkg/kafka"
	"github.com/Steemhunt/hunt-town-sub000/pkg/logger"
	"github.com/Steemhunt/hunt-town-sub000/pkg/pubsub"
	"github.com/Steemhunt/hunt-town-sub000/pkg/router"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xredis"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB
	router  *router.Router
	server  *http.Server

	dayClock    *dateutil.DayClock
	redisClient xredis.Client
	publisher   pubsub.Publisher
	mintClient  client.MintClient

	userRepo       repository.UserRepository
	candidateRepo  repository.CandidateRepository
	mintpadRepo    repository.MintpadRepository
	pointRepo      repository.PointRepository
	voteRepo       repository.VoteRepository
	dayStatsRepo   repository.DayStatsRepository
	checkpointRepo repository.ClaimCheckpointRepository

	authDomain      domain.AuthDomain
	pointDomain     domain.PointDomain
	voteDomain      domain.VoteDomain
	rewardDomain    domain.RewardDomain
	candidateDomain domain.CandidateDomain
	adminDomain     domain.AdminDomain
	statisticDomain domain.StatisticDomain
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "mintpad"),
			Password: getEnv("MYSQL_PASSWORD", "mintpad"),
			Database: getEnv("MYSQL_DATABASE", "mintpad"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", ""),
			Key:  getEnv("SERVER_KEY", ""),
		},
		Auth: config.AuthConfigs{
			TokenSecret:     getEnv("TOKEN_SECRET", "token_secret"),
			AccessTokenName: "access_token",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", time.Hour*24*7),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Eth: config.EthConfigs{
			RPC:     getEnv("ETH_RPC", "https://mainnet.base.org"),
			ChainID: getEnvAsInt64("ETH_CHAIN_ID", 8453),
			PrivKey: getEnv("ETH_PRIVATE_KEY", ""),
		},
		Mintpad: config.MintpadConfigs{
			GenesisTimestamp:    getEnvAsInt64("MINTPAD_GENESIS_TIMESTAMP", 0),
			DailyRewardPool:     getEnvAsUint64("MINTPAD_DAILY_REWARD_POOL", 0),
			AuthorizerAddress:   getEnv("MINTPAD_AUTHORIZER_ADDRESS", ""),
			OwnerAddress:        getEnv("MINTPAD_OWNER_ADDRESS", ""),
			MintContractAddress: getEnv("MINTPAD_MINT_CONTRACT_ADDRESS", ""),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadDayClock() {
	genesis := time.Unix(s.configs.Mintpad.GenesisTimestamp, 0)
	s.dayClock = dateutil.NewDayClock(genesis, nil)
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("mintpad", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadMintClient() {
	s.mintClient = client.NewEthMintClient()
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.candidateRepo = repository.NewCandidateRepository()
	s.mintpadRepo = repository.NewMintpadRepository()
	s.pointRepo = repository.NewPointRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.dayStatsRepo = repository.NewDayStatsRepository()
	s.checkpointRepo = repository.NewClaimCheckpointRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.pointDomain = domain.NewPointDomain(
		s.mintpadRepo, s.userRepo, s.pointRepo, s.dayStatsRepo, s.dayClock, s.publisher)
	s.voteDomain = domain.NewVoteDomain(
		s.mintpadRepo, s.candidateRepo, s.pointRepo, s.voteRepo, s.dayStatsRepo,
		s.dayClock, s.redisClient, s.publisher)
	s.rewardDomain = domain.NewRewardDomain(
		s.mintpadRepo, s.candidateRepo, s.userRepo, s.voteRepo, s.dayStatsRepo,
		s.checkpointRepo, s.dayClock, s.mintClient, s.publisher)
	s.candidateDomain = domain.NewCandidateDomain(s.candidateRepo, s.userRepo)
	s.adminDomain = domain.NewAdminDomain(
		s.mintpadRepo, s.userRepo, s.pointRepo, s.dayStatsRepo, s.dayClock)
	s.statisticDomain = domain.NewStatisticDomain(
		s.voteRepo, s.dayStatsRepo, s.dayClock, s.redisClient)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return parsed
}

func getEnvAsUint64(key string, fallback uint64) uint64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return parsed
}
