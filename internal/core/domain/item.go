package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Item is a marketplace entry projected from the ledger. The client never
// mutates it; every change comes from a fresh hydration.
type Item struct {
	ID           uint64         `json:"id"`
	Name         string         `json:"name"`
	ImageLocator string         `json:"image"`
	Price        *big.Int       `json:"price"` // Smallest currency unit (wei)
	Seller       common.Address `json:"seller"`
	Owner        common.Address `json:"owner"`
	IsSold       bool           `json:"is_sold"`
}

// OwnedBy reports whether account currently holds the item.
func (i *Item) OwnedBy(account common.Address) bool {
	return i.Owner == account
}

// Catalog is the client-side projection of the ledger for one account.
// Items is ordered by ascending id. A Catalog is built once by hydration
// and then only read; a newer hydration replaces it wholesale.
type Catalog struct {
	Account    common.Address `json:"account"`
	Items      []Item         `json:"items"`
	Owned      []Item         `json:"owned"`
	HydratedAt time.Time      `json:"hydrated_at"`
}

// EmptyCatalog returns a catalog with no items, used when no session exists.
func EmptyCatalog(account common.Address) *Catalog {
	return &Catalog{
		Account: account,
		Items:   []Item{},
		Owned:   []Item{},
	}
}

// Len returns the number of items in the full catalog.
func (c *Catalog) Len() int {
	return len(c.Items)
}

// ForSale returns the items that have never been sold.
func (c *Catalog) ForSale() []Item {
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if !it.IsSold {
			out = append(out, it)
		}
	}
	return out
}

// Lookup finds an item in the full catalog by id.
func (c *Catalog) Lookup(id uint64) (Item, bool) {
	// Ids are dense from 1, so the slot is usually id-1.
	if id >= 1 && id <= uint64(len(c.Items)) && c.Items[id-1].ID == id {
		return c.Items[id-1], true
	}
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
