package testutil

import (
	"context"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

// Deterministic test keys. Addresses are derived at runtime so fixtures and
// signature checks always agree.
var (
	AuthorizerKey = mustKey("11")
	OwnerKey      = mustKey("22")
	User1Key      = mustKey("33")
	User2Key      = mustKey("44")
)

const (
	Candidate1 = "candidate1"
	Candidate2 = "candidate2"
)

func mustKey(b string) *ecdsa.PrivateKey {
	key, err := ethcrypto.HexToECDSA(strings.Repeat(b, 32))
	if err != nil {
		panic(err)
	}

	return key
}

func AddressOf(key *ecdsa.PrivateKey) string {
	return ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
}

func AuthorizerAddress() string {
	return AddressOf(AuthorizerKey)
}

func OwnerAddress() string {
	return AddressOf(OwnerKey)
}

// SignPersonal signs message the way wallets do, over the EIP-191 prefixed
// hash, and returns the signature hex-encoded.
func SignPersonal(key *ecdsa.PrivateKey, message []byte) string {
	signature, err := ethcrypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		panic(err)
	}

	return hexutil.Encode(signature)
}

// CreateFixture seeds the mintpad singleton, two users, and two eligible
// candidates into the mocked database.
func CreateFixture(ctx context.Context) {
	cfg := xcontext.Configs(ctx)

	err := repository.NewMintpadRepository().Seed(ctx, &entity.Mintpad{
		ID:               entity.MintpadSingletonID,
		Mode:             entity.MintpadOpen,
		GenesisTimestamp: cfg.Mintpad.GenesisTimestamp,
		DailyRewardPool:  cfg.Mintpad.DailyRewardPool,
	})
	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository()
	users := []*entity.User{
		{Base: entity.Base{ID: "user1"}, Address: AddressOf(User1Key), Name: "user1"},
		{Base: entity.Base{ID: "user2"}, Address: AddressOf(User2Key), Name: "user2"},
		{Base: entity.Base{ID: "owner"}, Address: OwnerAddress(), Name: "owner"},
	}
	for _, user := range users {
		if err := userRepo.Create(ctx, user); err != nil {
			panic(err)
		}
	}

	candidateRepo := repository.NewCandidateRepository()
	candidates := []*entity.Candidate{
		{
			Base:         entity.Base{ID: Candidate1},
			TokenAddress: "0x1000000000000000000000000000000000000001",
			Name:         "Candidate One",
			Beneficiary:  "0x2000000000000000000000000000000000000001",
			Eligible:     true,
		},
		{
			Base:         entity.Base{ID: Candidate2},
			TokenAddress: "0x1000000000000000000000000000000000000002",
			Name:         "Candidate Two",
			Beneficiary:  "0x2000000000000000000000000000000000000002",
			Eligible:     true,
		},
	}
	for _, candidate := range candidates {
		if err := candidateRepo.Create(ctx, candidate); err != nil {
			panic(err)
		}
	}
}
