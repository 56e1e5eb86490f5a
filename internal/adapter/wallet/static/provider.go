// Package static is a wallet provider backed by a fixed account list.
// It does not sign; pair it with the memory ledger.
package static

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Provider hands out a configured account list and notifies watchers
// when SetAccounts replaces it.
type Provider struct {
	mu       sync.Mutex
	accounts []common.Address
	watchers map[chan []common.Address]struct{}
	log      zerolog.Logger
}

// New creates a provider for the given hex addresses.
func New(hexAccounts []string, log zerolog.Logger) (*Provider, error) {
	accounts := make([]common.Address, 0, len(hexAccounts))
	for _, h := range hexAccounts {
		if !common.IsHexAddress(h) {
			return nil, fmt.Errorf("static wallet: invalid account %q", h)
		}
		accounts = append(accounts, common.HexToAddress(h))
	}
	return &Provider{
		accounts: accounts,
		watchers: make(map[chan []common.Address]struct{}),
		log:      log,
	}, nil
}

// RequestAccounts returns the current list; an empty list is a ConnectionError.
func (p *Provider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.accounts) == 0 {
		return nil, apperror.ErrConnection(errors.New("no accounts authorized"))
	}
	return cloneAccounts(p.accounts), nil
}

// Watch streams every list passed to SetAccounts until ctx ends.
func (p *Provider) Watch(ctx context.Context) (<-chan []common.Address, error) {
	ch := make(chan []common.Address, 4)

	p.mu.Lock()
	p.watchers[ch] = struct{}{}
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.watchers, ch)
		close(ch)
		p.mu.Unlock()
	}()
	return ch, nil
}

// SetAccounts replaces the account list, as a user switching or
// disconnecting accounts in their wallet would. A watcher that is behind
// loses its oldest pending change, never the newest.
func (p *Provider) SetAccounts(accounts []common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.accounts = cloneAccounts(accounts)
	for ch := range p.watchers {
		if dropped := deliverLatest(ch, cloneAccounts(accounts)); dropped > 0 {
			p.log.Debug().Int("accounts", len(accounts)).Int("superseded", dropped).Msg("static wallet: watcher is behind, superseding stale changes")
		}
	}
}

// deliverLatest sends set on ch, evicting queued sets until it fits.
// Callers hold p.mu, so nothing else sends on ch meanwhile.
func deliverLatest(ch chan []common.Address, set []common.Address) (dropped int) {
	for {
		select {
		case ch <- set:
			return dropped
		default:
		}
		select {
		case <-ch:
			dropped++
		default:
		}
	}
}

func cloneAccounts(in []common.Address) []common.Address {
	out := make([]common.Address, len(in))
	copy(out, in)
	return out
}
