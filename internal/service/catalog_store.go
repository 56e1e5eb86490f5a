package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// CatalogStore rebuilds the catalog projection from the ledger.
type CatalogStore struct {
	metrics *Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewCatalogStore creates a CatalogStore.
func NewCatalogStore(metrics *Metrics, log zerolog.Logger) *CatalogStore {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &CatalogStore{metrics: metrics, log: log, now: time.Now}
}

// maxCatalogPrealloc caps the slice reserved up front; the count comes
// from the ledger and is not trusted as an allocation size.
const maxCatalogPrealloc = 1024

// Hydrate reads every item in id order, then resolves the items owned by
// account one at a time. Any failed read fails the whole hydration; the
// caller keeps whatever catalog it had before.
func (s *CatalogStore) Hydrate(ctx context.Context, reader ports.LedgerReader, account common.Address) (cat *domain.Catalog, err error) {
	start := s.now()
	defer func() { s.metrics.observeHydrate(start, err) }()

	count, err := reader.ItemCount(ctx)
	if err != nil {
		return nil, readError(fmt.Errorf("item count: %w", err))
	}

	items := make([]domain.Item, 0, min(count, maxCatalogPrealloc))
	for id := uint64(1); id <= count; id++ {
		it, err := s.read(ctx, reader, id)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}

	ownedIDs, err := reader.OwnedItemIDs(ctx, account)
	if err != nil {
		return nil, readError(fmt.Errorf("owned ids for %s: %w", account.Hex(), err))
	}

	owned := make([]domain.Item, 0, len(ownedIDs))
	for _, id := range ownedIDs {
		it, err := s.read(ctx, reader, id)
		if err != nil {
			return nil, err
		}
		owned = append(owned, *it)
	}

	s.metrics.CatalogItems.Set(float64(len(items)))
	s.log.Debug().
		Str("account", account.Hex()).
		Int("items", len(items)).
		Int("owned", len(owned)).
		Dur("took", time.Since(start)).
		Msg("catalog hydrated")

	return &domain.Catalog{
		Account:    account,
		Items:      items,
		Owned:      owned,
		HydratedAt: s.now().UTC(),
	}, nil
}

func (s *CatalogStore) read(ctx context.Context, reader ports.LedgerReader, id uint64) (*domain.Item, error) {
	s.metrics.ItemReads.Inc()
	it, err := reader.Item(ctx, id)
	if err != nil {
		return nil, readError(fmt.Errorf("item %d: %w", id, err))
	}
	return it, nil
}

func readError(err error) error {
	return apperror.ErrLedgerRead(err).WithPhase("hydrate")
}
