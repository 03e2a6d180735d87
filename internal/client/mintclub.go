package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/crypto/sha3"

	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

var RpcTimeOut = time.Second * 5

// MintClient mints candidate tokens through the bonding-curve contract. It
// delivers exactly desiredOutput units of token to receiver and returns the
// amount of reserve actually spent, which is at most maxSpend.
type MintClient interface {
	Mint(ctx context.Context, token, receiver common.Address, desiredOutput, maxSpend uint64) (uint64, error)
}

type ethMintClient struct {
	lock   sync.Mutex
	client *ethclient.Client
}

func NewEthMintClient() MintClient {
	return &ethMintClient{}
}

func (c *ethMintClient) getClient(ctx context.Context) (*ethclient.Client, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.client == nil {
		client, err := ethclient.Dial(xcontext.Configs(ctx).Eth.RPC)
		if err != nil {
			return nil, err
		}
		c.client = client
	}

	return c.client, nil
}

func (c *ethMintClient) Mint(
	ctx context.Context, token, receiver common.Address, desiredOutput, maxSpend uint64,
) (uint64, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return 0, err
	}

	privateKey, err := crypto.HexToECDSA(xcontext.Configs(ctx).Eth.PrivKey)
	if err != nil {
		return 0, err
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return 0, fmt.Errorf("invalid private key")
	}
	from := crypto.PubkeyToAddress(*publicKey)

	contract := common.HexToAddress(xcontext.Configs(ctx).Mintpad.MintContractAddress)
	data := mintCallData(token, receiver, desiredOutput, maxSpend)

	callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
	defer cancel()

	msg := ethereum.CallMsg{From: from, To: &contract, Data: data}

	// Simulate first. The contract reverts on insufficient reserve, and the
	// simulated return value is the reserve it will consume.
	ret, err := client.CallContract(callCtx, msg, nil)
	if err != nil {
		return 0, err
	}

	if len(ret) < 32 {
		return 0, fmt.Errorf("unexpected mint return of %d bytes", len(ret))
	}

	actualSpent := new(big.Int).SetBytes(ret[:32])
	if !actualSpent.IsUint64() || actualSpent.Uint64() > maxSpend {
		return 0, fmt.Errorf("mint spent %s exceeds budget %d", actualSpent, maxSpend)
	}

	nonce, err := client.PendingNonceAt(callCtx, from)
	if err != nil {
		return 0, err
	}

	gasPrice, err := client.SuggestGasPrice(callCtx)
	if err != nil {
		return 0, err
	}

	gasLimit, err := client.EstimateGas(callCtx, msg)
	if err != nil {
		return 0, err
	}

	tx := types.NewTransaction(nonce, contract, big.NewInt(0), gasLimit, gasPrice, data)
	chainID := big.NewInt(xcontext.Configs(ctx).Eth.ChainID)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), privateKey)
	if err != nil {
		return 0, err
	}

	if err := client.SendTransaction(callCtx, signedTx); err != nil {
		return 0, err
	}

	xcontext.Logger(ctx).Infof("Sent mint tx %s: token=%s receiver=%s spent=%s output=%d",
		signedTx.Hash().Hex(), token.Hex(), receiver.Hex(), actualSpent, desiredOutput)

	return actualSpent.Uint64(), nil
}

func mintCallData(token, receiver common.Address, desiredOutput, maxSpend uint64) []byte {
	fnSignature := []byte("mint(address,uint256,uint256,address)")
	hash := sha3.NewLegacyKeccak256()
	hash.Write(fnSignature)
	methodID := hash.Sum(nil)[:4]

	var data []byte
	data = append(data, methodID...)
	data = append(data, common.LeftPadBytes(token.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(new(big.Int).SetUint64(desiredOutput).Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(new(big.Int).SetUint64(maxSpend).Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(receiver.Bytes(), 32)...)
	return data
}
