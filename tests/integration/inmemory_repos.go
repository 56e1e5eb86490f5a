package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Operation Journal ---

type inMemoryOperationRepo struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]domain.OperationRecord
}

func newInMemoryOperationRepo() *inMemoryOperationRepo {
	return &inMemoryOperationRepo{recs: make(map[uuid.UUID]domain.OperationRecord)}
}

func (r *inMemoryOperationRepo) Create(ctx context.Context, rec *domain.OperationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recs[rec.ID]; exists {
		return fmt.Errorf("operation %s already journaled", rec.ID)
	}
	r.recs[rec.ID] = *rec
	return nil
}

func (r *inMemoryOperationRepo) Finish(ctx context.Context, rec *domain.OperationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recs[rec.ID]; !exists {
		return fmt.Errorf("finish operation %s: no such row", rec.ID)
	}
	r.recs[rec.ID] = *rec
	return nil
}

func (r *inMemoryOperationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *inMemoryOperationRepo) ListRecent(ctx context.Context, params ports.OperationListParams) ([]domain.OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.OperationRecord
	for _, rec := range r.recs {
		if params.Account != nil && rec.Account != *params.Account {
			continue
		}
		if params.Kind != nil && rec.Kind != *params.Kind {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}
