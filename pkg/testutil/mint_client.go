package testutil

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// MockMintClient spends min(desiredOutput, maxSpend) by default, modeling a
// curve where one reserve unit buys one output unit.
type MockMintClient struct {
	MintFunc func(ctx context.Context, token, receiver common.Address, desiredOutput, maxSpend uint64) (uint64, error)

	Mints []MockMint
}

type MockMint struct {
	Token         common.Address
	Receiver      common.Address
	DesiredOutput uint64
	MaxSpend      uint64
}

func (m *MockMintClient) Mint(
	ctx context.Context, token, receiver common.Address, desiredOutput, maxSpend uint64,
) (uint64, error) {
	m.Mints = append(m.Mints, MockMint{
		Token:         token,
		Receiver:      receiver,
		DesiredOutput: desiredOutput,
		MaxSpend:      maxSpend,
	})

	if m.MintFunc != nil {
		return m.MintFunc(ctx, token, receiver, desiredOutput, maxSpend)
	}

	if desiredOutput < maxSpend {
		return desiredOutput, nil
	}

	return maxSpend, nil
}
