package dto

import (
	"time"

	"marketplace-sync/internal/core/domain"
)

// ListItemRequest is the request body for listing a new item.
type ListItemRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Image string `json:"image" binding:"required,locator"`
	Price string `json:"price" binding:"required,display_price"` // ether, e.g. "1.5"
}

// PurchaseRequest is the optional request body for a purchase. Without a
// price the item's catalog price is paid.
type PurchaseRequest struct {
	Price *string `json:"price,omitempty" binding:"omitempty,display_price"`
}

// TransferRequest is the request body for a transfer. An empty recipient
// uses the pending transfer target.
type TransferRequest struct {
	To string `json:"to" binding:"omitempty,eth_addr"`
}

// TransferTargetRequest sets or clears (empty To) the pending transfer target.
type TransferTargetRequest struct {
	To string `json:"to" binding:"omitempty,eth_addr"`
}

// ItemResponse renders an item with both price units.
type ItemResponse struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Image          string `json:"image"`
	PriceWei       string `json:"price_wei"`
	Price          string `json:"price"`
	Seller         string `json:"seller"`
	Owner          string `json:"owner"`
	IsSold         bool   `json:"is_sold"`
	TransferTarget string `json:"transfer_target,omitempty"`
}

// ItemListResponse wraps a catalog view.
type ItemListResponse struct {
	Account    string         `json:"account"`
	HydratedAt *string        `json:"hydrated_at,omitempty"`
	Items      []ItemResponse `json:"items"`
	Total      int            `json:"total"`
}

// SessionResponse describes the active session and the last operation status.
type SessionResponse struct {
	ID            string `json:"id,omitempty"`
	Account       string `json:"account,omitempty"`
	Connected     bool   `json:"connected"`
	EstablishedAt string `json:"established_at,omitempty"`
	State         string `json:"state"`
	Status        string `json:"status"`
	CatalogSize   int    `json:"catalog_size"`
}

// OperationResponse is the outcome of an upload, list, purchase or transfer.
type OperationResponse struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	State   string  `json:"state"`
	ItemID  *uint64 `json:"item_id,omitempty"`
	TxHash  string  `json:"tx_hash,omitempty"`
	Status  string  `json:"status"`
	Locator string  `json:"locator,omitempty"`
	Warning string  `json:"warning,omitempty"` // catalog refresh after the operation failed
}

// OperationRecordResponse is one journal row.
type OperationRecordResponse struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id"`
	Kind       string  `json:"kind"`
	Account    string  `json:"account"`
	ItemID     *uint64 `json:"item_id,omitempty"`
	TxHash     *string `json:"tx_hash,omitempty"`
	State      string  `json:"state"`
	Status     string  `json:"status"`
	ErrorCode  *string `json:"error_code,omitempty"`
	CreatedAt  string  `json:"created_at"`
	FinishedAt *string `json:"finished_at,omitempty"`
}

// NewItemResponse renders item; target is the pending transfer target, if any.
func NewItemResponse(item domain.Item, target string) ItemResponse {
	wei := "0"
	if item.Price != nil {
		wei = item.Price.String()
	}
	return ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Image:          item.ImageLocator,
		PriceWei:       wei,
		Price:          domain.FormatPrice(item.Price),
		Seller:         item.Seller.Hex(),
		Owner:          item.Owner.Hex(),
		IsSold:         item.IsSold,
		TransferTarget: target,
	}
}

// NewItemListResponse renders items taken from catalog.
func NewItemListResponse(catalog *domain.Catalog, items []domain.Item, target func(uint64) string) ItemListResponse {
	resp := ItemListResponse{
		Account: catalog.Account.Hex(),
		Items:   make([]ItemResponse, 0, len(items)),
		Total:   len(items),
	}
	if !catalog.HydratedAt.IsZero() {
		ts := catalog.HydratedAt.UTC().Format(time.RFC3339)
		resp.HydratedAt = &ts
	}
	for _, it := range items {
		resp.Items = append(resp.Items, NewItemResponse(it, target(it.ID)))
	}
	return resp
}

// NewOperationResponse renders an operation outcome.
func NewOperationResponse(res *domain.OperationResult) OperationResponse {
	out := OperationResponse{
		ID:      res.ID.String(),
		Kind:    string(res.Kind),
		State:   string(res.State),
		Status:  res.Status,
		Locator: res.Locator,
	}
	if res.ItemID != 0 {
		id := res.ItemID
		out.ItemID = &id
	}
	if res.TxHash != nil {
		out.TxHash = res.TxHash.Hex()
	}
	if res.HydrationErr != nil {
		out.Warning = "catalog refresh failed: " + res.HydrationErr.Error()
	}
	return out
}

// NewOperationRecordResponse renders a journal row.
func NewOperationRecordResponse(rec domain.OperationRecord) OperationRecordResponse {
	out := OperationRecordResponse{
		ID:        rec.ID.String(),
		SessionID: rec.SessionID.String(),
		Kind:      string(rec.Kind),
		Account:   rec.Account,
		ItemID:    rec.ItemID,
		TxHash:    rec.TxHash,
		State:     string(rec.State),
		Status:    rec.Status,
		ErrorCode: rec.ErrorCode,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rec.FinishedAt != nil {
		ts := rec.FinishedAt.UTC().Format(time.RFC3339)
		out.FinishedAt = &ts
	}
	return out
}
