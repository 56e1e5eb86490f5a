package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// Gateway is a contract binding for one account. It does not cache reads
// and never retries a write.
type Gateway struct {
	contract       *bind.BoundContract
	backend        Backend
	account        common.Address
	opts           *bind.TransactOpts
	confirmTimeout time.Duration
	log            zerolog.Logger
}

func (g *Gateway) Account() common.Address { return g.account }

func (g *Gateway) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: g.account}
}

func (g *Gateway) ItemCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	if err := g.contract.Call(g.callOpts(ctx), &out, methodItemCount); err != nil {
		return 0, apperror.ErrLedgerRead(fmt.Errorf("%s: %w", methodItemCount, err))
	}
	count := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !count.IsUint64() {
		return 0, apperror.ErrLedgerRead(fmt.Errorf("%s: %s overflows", methodItemCount, count))
	}
	return count.Uint64(), nil
}

func (g *Gateway) Item(ctx context.Context, id uint64) (*domain.Item, error) {
	var out []interface{}
	if err := g.contract.Call(g.callOpts(ctx), &out, methodItems, new(big.Int).SetUint64(id)); err != nil {
		return nil, apperror.ErrLedgerRead(fmt.Errorf("%s(%d): %w", methodItems, id, err))
	}
	if len(out) != 7 {
		return nil, apperror.ErrLedgerRead(fmt.Errorf("%s(%d): got %d fields", methodItems, id, len(out)))
	}

	itemID := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !itemID.IsUint64() {
		return nil, apperror.ErrLedgerRead(fmt.Errorf("%s(%d): id %s overflows", methodItems, id, itemID))
	}
	return &domain.Item{
		ID:           itemID.Uint64(),
		Name:         *abi.ConvertType(out[1], new(string)).(*string),
		ImageLocator: *abi.ConvertType(out[2], new(string)).(*string),
		Price:        *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		Seller:       *abi.ConvertType(out[4], new(common.Address)).(*common.Address),
		Owner:        *abi.ConvertType(out[5], new(common.Address)).(*common.Address),
		IsSold:       *abi.ConvertType(out[6], new(bool)).(*bool),
	}, nil
}

func (g *Gateway) OwnedItemIDs(ctx context.Context, account common.Address) ([]uint64, error) {
	var out []interface{}
	if err := g.contract.Call(g.callOpts(ctx), &out, methodItemsByOwner, account); err != nil {
		return nil, apperror.ErrLedgerRead(fmt.Errorf("%s(%s): %w", methodItemsByOwner, account.Hex(), err))
	}
	raw := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)

	ids := make([]uint64, 0, len(raw))
	for _, id := range raw {
		if !id.IsUint64() {
			return nil, apperror.ErrLedgerRead(fmt.Errorf("%s(%s): id %s overflows", methodItemsByOwner, account.Hex(), id))
		}
		ids = append(ids, id.Uint64())
	}
	return ids, nil
}

// Submit signs and broadcasts op.
func (g *Gateway) Submit(ctx context.Context, op domain.LedgerOperation) (ports.PendingTransaction, error) {
	method, args, err := encodeOperation(op)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	opts := *g.opts
	opts.Context = ctx
	opts.Value = nil
	if op.Kind == domain.OperationPurchase && op.Value != nil {
		opts.Value = new(big.Int).Set(op.Value)
	}
	sign := g.opts.Signer
	opts.Signer = func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
		signed, err := sign(from, tx)
		if err != nil {
			return nil, &signerError{err: err}
		}
		return signed, nil
	}

	tx, err := g.contract.Transact(&opts, method, args...)
	if err != nil {
		return nil, classifySubmitError(err)
	}

	g.log.Info().Str("tx", tx.Hash().Hex()).Str("op", op.String()).Uint64("nonce", tx.Nonce()).Msg("transaction broadcast")
	return &pendingTx{tx: tx, backend: g.backend, timeout: g.confirmTimeout}, nil
}

func encodeOperation(op domain.LedgerOperation) (string, []interface{}, error) {
	switch op.Kind {
	case domain.OperationList:
		price := op.Price
		if price == nil {
			price = new(big.Int)
		}
		return methodListItem, []interface{}{op.Name, op.ImageLocator, price}, nil
	case domain.OperationPurchase:
		return methodPurchaseItem, []interface{}{new(big.Int).SetUint64(op.ItemID)}, nil
	case domain.OperationTransfer:
		return methodTransferItem, []interface{}{new(big.Int).SetUint64(op.ItemID), op.To}, nil
	default:
		return "", nil, fmt.Errorf("unsupported ledger operation %q", op.Kind)
	}
}

// signerError marks failures raised by the wallet while signing.
type signerError struct{ err error }

func (e *signerError) Error() string { return "signing: " + e.err.Error() }
func (e *signerError) Unwrap() error { return e.err }

// classifySubmitError maps a Transact failure onto the error taxonomy.
// Gas estimation runs the call against the node, so a revert there means
// the ledger refused the operation before anything was broadcast.
func classifySubmitError(err error) error {
	var se *signerError
	if errors.As(err, &se) {
		return apperror.ErrRejection(se.err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return apperror.ErrExecution(err)
	}
	return apperror.ErrSubmission(err)
}

type pendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
	timeout time.Duration
}

func (p *pendingTx) Hash() common.Hash { return p.tx.Hash() }

// Await polls for the receipt. A failure to obtain one leaves the outcome
// unknown, which is reported as an execution failure.
func (p *pendingTx) Await(ctx context.Context) (*domain.Confirmation, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, apperror.ErrExecution(fmt.Errorf("awaiting %s: %w", p.tx.Hash().Hex(), err))
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, apperror.ErrExecution(fmt.Errorf("execution reverted: tx %s in block %s", p.tx.Hash().Hex(), receipt.BlockNumber))
	}

	conf := &domain.Confirmation{TxHash: receipt.TxHash, GasUsed: receipt.GasUsed}
	if receipt.BlockNumber != nil {
		conf.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return conf, nil
}
