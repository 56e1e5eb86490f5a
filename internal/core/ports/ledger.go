package ports

import (
	"context"

	"marketplace-sync/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerReader is the read-only side of the ledger contract.
// Calls have no side effects and may run concurrently and repeatedly.
type LedgerReader interface {
	ItemCount(ctx context.Context) (uint64, error)
	Item(ctx context.Context, id uint64) (*domain.Item, error)
	OwnedItemIDs(ctx context.Context, account common.Address) ([]uint64, error)
}

// LedgerGateway is a ledger connection bound to one account.
// It performs no caching and no retries.
type LedgerGateway interface {
	LedgerReader
	// Account is the identity transactions are signed for.
	Account() common.Address
	// Submit signs and broadcasts op. Errors are apperror RejectionError,
	// SubmissionError, or ExecutionError when the ledger refuses it up front.
	Submit(ctx context.Context, op domain.LedgerOperation) (PendingTransaction, error)
}

// PendingTransaction is a broadcast transaction whose outcome is not yet known.
type PendingTransaction interface {
	Hash() common.Hash
	// Await blocks until the transaction is finalized. A revert is
	// reported as an apperror ExecutionError.
	Await(ctx context.Context) (*domain.Confirmation, error)
}

// LedgerConnector builds gateways for an account chosen by the wallet.
type LedgerConnector interface {
	// Connect fails with an apperror ConnectionError when the account
	// cannot sign or the ledger is unreachable.
	Connect(ctx context.Context, account common.Address) (LedgerGateway, error)
}
