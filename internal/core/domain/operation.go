package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// OperationKind names a user-initiated marketplace action.
type OperationKind string

const (
	OperationUpload   OperationKind = "upload"
	OperationList     OperationKind = "list"
	OperationPurchase OperationKind = "purchase"
	OperationTransfer OperationKind = "transfer"
)

// OperationState is the lifecycle of one mutating operation.
// Idle -> Submitting -> AwaitingConfirmation -> Succeeded|Failed -> Idle.
type OperationState string

const (
	OperationStateIdle                 OperationState = "IDLE"
	OperationStateSubmitting           OperationState = "SUBMITTING"
	OperationStateAwaitingConfirmation OperationState = "AWAITING_CONFIRMATION"
	OperationStateSucceeded            OperationState = "SUCCEEDED"
	OperationStateFailed               OperationState = "FAILED"
)

// IsTerminal returns true once the outcome of the operation is known.
func (s OperationState) IsTerminal() bool {
	return s == OperationStateSucceeded || s == OperationStateFailed
}

// LedgerOperation is the payload of a ledger write. Only the fields that
// belong to Kind are set.
type LedgerOperation struct {
	Kind         OperationKind
	Name         string
	ImageLocator string
	Price        *big.Int
	ItemID       uint64
	To           common.Address
	// Value is the amount transferred with the call (purchase only).
	Value *big.Int
}

// NewListOperation builds the payload for listing a new item.
func NewListOperation(name, locator string, price *big.Int) LedgerOperation {
	return LedgerOperation{Kind: OperationList, Name: name, ImageLocator: locator, Price: price}
}

// NewPurchaseOperation builds the payload for buying an item at price.
func NewPurchaseOperation(itemID uint64, price *big.Int) LedgerOperation {
	return LedgerOperation{Kind: OperationPurchase, ItemID: itemID, Value: price}
}

// NewTransferOperation builds the payload for handing an item to another account.
func NewTransferOperation(itemID uint64, to common.Address) LedgerOperation {
	return LedgerOperation{Kind: OperationTransfer, ItemID: itemID, To: to}
}

func (o LedgerOperation) String() string {
	switch o.Kind {
	case OperationList:
		return fmt.Sprintf("list(%q, price=%s)", o.Name, o.Price)
	case OperationPurchase:
		return fmt.Sprintf("purchase(#%d, value=%s)", o.ItemID, o.Value)
	case OperationTransfer:
		return fmt.Sprintf("transfer(#%d, to=%s)", o.ItemID, o.To.Hex())
	default:
		return string(o.Kind)
	}
}

// Confirmation is the finalized outcome of a successful ledger write.
type Confirmation struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	GasUsed     uint64      `json:"gas_used"`
}

// OperationResult is what a caller gets back from a mutating operation.
type OperationResult struct {
	ID      uuid.UUID      `json:"id"`
	Kind    OperationKind  `json:"kind"`
	State   OperationState `json:"state"`
	ItemID  uint64         `json:"item_id,omitempty"`
	TxHash  *common.Hash   `json:"tx_hash,omitempty"`
	Status  string         `json:"status"` // User-visible, names the phase
	Locator string         `json:"locator,omitempty"`
	// HydrationErr is set when the follow-up catalog rebuild failed.
	HydrationErr error `json:"-"`
}

// Succeeded reports whether the operation completed on the ledger.
func (r *OperationResult) Succeeded() bool {
	return r.State == OperationStateSucceeded
}

// OperationRecord is a journal row for one attempted operation.
type OperationRecord struct {
	ID         uuid.UUID      `json:"id"`
	SessionID  uuid.UUID      `json:"session_id"`
	Kind       OperationKind  `json:"kind"`
	Account    string         `json:"account"`
	ItemID     *uint64        `json:"item_id,omitempty"`
	TxHash     *string        `json:"tx_hash,omitempty"`
	State      OperationState `json:"state"`
	Status     string         `json:"status"`
	ErrorCode  *string        `json:"error_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}
