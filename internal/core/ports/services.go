package ports

import (
	"context"
	"math/big"

	"marketplace-sync/internal/core/domain"
)

// MarketplaceService is the orchestration core as seen by the presentation layer.
type MarketplaceService interface {
	// Bootstrap requests accounts from the wallet and establishes the session.
	Bootstrap(ctx context.Context) error
	// Refresh rebuilds the catalog for the current session.
	Refresh(ctx context.Context) error

	Session() domain.SessionInfo
	Catalog() *domain.Catalog
	State() domain.OperationState
	LastStatus() string

	UploadImage(ctx context.Context, image domain.Image) (*domain.OperationResult, error)
	ListItem(ctx context.Context, req ListItemRequest) (*domain.OperationResult, error)
	PurchaseItem(ctx context.Context, req PurchaseRequest) (*domain.OperationResult, error)
	TransferItem(ctx context.Context, req TransferRequest) (*domain.OperationResult, error)

	SetTransferTarget(itemID uint64, to string) error
	TransferTarget(itemID uint64) (string, bool)
}

// ListItemRequest holds raw input for listing; Price is in display units.
type ListItemRequest struct {
	Name    string
	Locator string
	Price   string
}

// PurchaseRequest buys ItemID. A nil Price means the catalog's price.
type PurchaseRequest struct {
	ItemID uint64
	Price  *big.Int
}

// TransferRequest hands ItemID to To. An empty To falls back to the
// pending transfer target stored for the item.
type TransferRequest struct {
	ItemID uint64
	To     string
}
