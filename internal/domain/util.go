package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Steemhunt/hunt-town-sub000/internal/entity"
	"github.com/Steemhunt/hunt-town-sub000/internal/repository"
	"github.com/Steemhunt/hunt-town-sub000/pkg/errorx"
	"github.com/Steemhunt/hunt-town-sub000/pkg/xcontext"
)

// activationMessage is the canonical text users' endorsements are signed
// over. The nonce binds the endorsement to one activation.
func activationMessage(address common.Address, day int64, amount, nonce uint64) []byte {
	return []byte(fmt.Sprintf("mintpad-activate|%s|%d|%d|%d",
		strings.ToLower(address.Hex()), day, amount, nonce))
}

func recoverSignerAddress(message []byte, signatureHex string) (common.Address, error) {
	signature, err := hexutil.Decode(signatureHex)
	if err != nil {
		return common.Address{}, err
	}

	if len(signature) != ethcrypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(signature))
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(accounts.TextHash(message), signature)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(*recovered), nil
}

func requireOwner(ctx context.Context, userRepo repository.UserRepository) (*entity.User, error) {
	user, err := userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get request user: %v", err)
		return nil, errorx.Unknown
	}

	owner := common.HexToAddress(xcontext.Configs(ctx).Mintpad.OwnerAddress)
	if common.HexToAddress(user.Address) != owner {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return user, nil
}
