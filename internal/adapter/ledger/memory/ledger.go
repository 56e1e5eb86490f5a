// Package memory provides an in-process marketplace ledger. It enforces the
// same rules as the deployed contract and is used for local runs and tests.
package memory

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

// Revert reasons, worded like the contract's require messages.
var (
	ErrEmptyName      = errors.New("execution reverted: name required")
	ErrEmptyImage     = errors.New("execution reverted: image required")
	ErrZeroPrice      = errors.New("execution reverted: price must be > 0")
	ErrUnknownItem    = errors.New("execution reverted: item does not exist")
	ErrAlreadySold    = errors.New("execution reverted: item already sold")
	ErrOwnPurchase    = errors.New("execution reverted: seller cannot buy own item")
	ErrWrongPayment   = errors.New("execution reverted: incorrect price")
	ErrNotOwner       = errors.New("execution reverted: not the owner")
	ErrZeroRecipient  = errors.New("execution reverted: invalid recipient")
	ErrSignerDeclined = errors.New("user denied transaction signature")
)

// Ledger holds marketplace state. Items are stored at index id-1.
type Ledger struct {
	mu       sync.RWMutex
	items    []domain.Item
	block    uint64
	nonce    uint64
	declined map[common.Address]bool
	log      zerolog.Logger
}

// New creates an empty ledger.
func New(log zerolog.Logger) *Ledger {
	return &Ledger{
		declined: make(map[common.Address]bool),
		log:      log,
	}
}

// Connect returns a gateway whose transactions are signed by account.
func (l *Ledger) Connect(_ context.Context, account common.Address) (ports.LedgerGateway, error) {
	if account == (common.Address{}) {
		return nil, apperror.ErrConnection(errors.New("zero account"))
	}
	return &gateway{ledger: l, account: account}, nil
}

// DeclineSigning makes the signer for account refuse (or accept again).
func (l *Ledger) DeclineSigning(account common.Address, decline bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.declined[account] = decline
}

// Seed lists an item directly, bypassing signing. Returns the new id.
func (l *Ledger) Seed(seller common.Address, name, image string, price *big.Int) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list(seller, name, image, price)
}

// Ping implements ports.HealthChecker.
func (l *Ledger) Ping(context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (l *Ledger) Name() string { return "ledger" }

func (l *Ledger) list(seller common.Address, name, image string, price *big.Int) uint64 {
	id := uint64(len(l.items)) + 1
	l.items = append(l.items, domain.Item{
		ID:           id,
		Name:         name,
		ImageLocator: image,
		Price:        new(big.Int).Set(price),
		Seller:       seller,
		Owner:        seller,
	})
	return id
}

// apply executes op for sender. Caller holds l.mu.
func (l *Ledger) apply(sender common.Address, op domain.LedgerOperation) error {
	switch op.Kind {
	case domain.OperationList:
		if op.Name == "" {
			return ErrEmptyName
		}
		if op.ImageLocator == "" {
			return ErrEmptyImage
		}
		if op.Price == nil || op.Price.Sign() <= 0 {
			return ErrZeroPrice
		}
		l.list(sender, op.Name, op.ImageLocator, op.Price)
		return nil

	case domain.OperationPurchase:
		it, err := l.slot(op.ItemID)
		if err != nil {
			return err
		}
		if it.IsSold {
			return ErrAlreadySold
		}
		if it.Seller == sender {
			return ErrOwnPurchase
		}
		if op.Value == nil || op.Value.Cmp(it.Price) != 0 {
			return ErrWrongPayment
		}
		it.Owner = sender
		it.IsSold = true
		return nil

	case domain.OperationTransfer:
		it, err := l.slot(op.ItemID)
		if err != nil {
			return err
		}
		if it.Owner != sender {
			return ErrNotOwner
		}
		if op.To == (common.Address{}) {
			return ErrZeroRecipient
		}
		it.Owner = op.To
		return nil

	default:
		return fmt.Errorf("execution reverted: unknown operation %q", op.Kind)
	}
}

func (l *Ledger) slot(id uint64) (*domain.Item, error) {
	if id == 0 || id > uint64(len(l.items)) {
		return nil, ErrUnknownItem
	}
	return &l.items[id-1], nil
}

func (l *Ledger) nextHash(sender common.Address) common.Hash {
	l.nonce++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], l.nonce)
	return crypto.Keccak256Hash(sender.Bytes(), buf[:])
}

func copyItem(it domain.Item) *domain.Item {
	cp := it
	if it.Price != nil {
		cp.Price = new(big.Int).Set(it.Price)
	}
	return &cp
}
