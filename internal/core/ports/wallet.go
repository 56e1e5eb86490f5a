package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// WalletProvider is the external identity provider.
type WalletProvider interface {
	// RequestAccounts returns the authorized accounts; the first is active.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Watch streams the account set every time it changes. The channel is
	// closed when ctx ends.
	Watch(ctx context.Context) (<-chan []common.Address, error)
}
