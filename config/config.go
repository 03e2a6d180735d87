package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Eth       EthConfigs
	Mintpad   MintpadConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type AuthConfigs struct {
	TokenSecret     string
	AccessTokenName string
	AccessToken     TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type EthConfigs struct {
	RPC     string
	ChainID int64
	PrivKey string
}

type MintpadConfigs struct {
	// GenesisTimestamp is the deployment timestamp in unix seconds. The day
	// sequence is anchored to this value rounded down to UTC midnight.
	GenesisTimestamp int64

	// DailyRewardPool is the reward, in scaled smallest token units, sealed
	// into each day as it starts.
	DailyRewardPool uint64

	// AuthorizerAddress is the trusted signer of point activations.
	AuthorizerAddress string

	// OwnerAddress is allowed to run administrative operations.
	OwnerAddress string

	// MintContractAddress is the bonding-curve contract the claim settlement
	// mints against.
	MintContractAddress string
}
