package memory

import (
	"context"
	"math/big"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
)

type gateway struct {
	ledger  *Ledger
	account common.Address
}

func (g *gateway) Account() common.Address { return g.account }

func (g *gateway) ItemCount(context.Context) (uint64, error) {
	g.ledger.mu.RLock()
	defer g.ledger.mu.RUnlock()
	return uint64(len(g.ledger.items)), nil
}

// Item mirrors a Solidity mapping getter: unknown ids yield a zero item.
func (g *gateway) Item(_ context.Context, id uint64) (*domain.Item, error) {
	g.ledger.mu.RLock()
	defer g.ledger.mu.RUnlock()
	if id == 0 || id > uint64(len(g.ledger.items)) {
		return &domain.Item{Price: new(big.Int)}, nil
	}
	return copyItem(g.ledger.items[id-1]), nil
}

func (g *gateway) OwnedItemIDs(_ context.Context, account common.Address) ([]uint64, error) {
	g.ledger.mu.RLock()
	defer g.ledger.mu.RUnlock()
	ids := make([]uint64, 0)
	for _, it := range g.ledger.items {
		if it.Owner == account {
			ids = append(ids, it.ID)
		}
	}
	return ids, nil
}

// Submit executes op immediately; the outcome is reported by Await.
func (g *gateway) Submit(_ context.Context, op domain.LedgerOperation) (ports.PendingTransaction, error) {
	l := g.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.declined[g.account] {
		return nil, apperror.ErrRejection(ErrSignerDeclined)
	}

	hash := l.nextHash(g.account)
	l.block++
	err := l.apply(g.account, op)
	if err != nil {
		l.log.Debug().Err(err).Str("op", op.String()).Str("tx", hash.Hex()).Msg("memory ledger: reverted")
	} else {
		l.log.Debug().Str("op", op.String()).Str("tx", hash.Hex()).Msg("memory ledger: applied")
	}

	return &pending{hash: hash, block: l.block, err: err}, nil
}

type pending struct {
	hash  common.Hash
	block uint64
	err   error
}

func (p *pending) Hash() common.Hash { return p.hash }

func (p *pending) Await(context.Context) (*domain.Confirmation, error) {
	if p.err != nil {
		return nil, apperror.ErrExecution(p.err)
	}
	return &domain.Confirmation{TxHash: p.hash, BlockNumber: p.block, GasUsed: 21000}, nil
}
