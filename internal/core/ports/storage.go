package ports

import (
	"context"

	"marketplace-sync/internal/core/domain"

	"github.com/google/uuid"
)

// ImageUploader pushes an image to content-addressed storage.
type ImageUploader interface {
	// Upload returns a locator that resolves without any session.
	// Single shot: no retries.
	Upload(ctx context.Context, image domain.Image) (string, error)
}

// OperationRepository journals attempted marketplace operations.
type OperationRepository interface {
	Create(ctx context.Context, rec *domain.OperationRecord) error
	Finish(ctx context.Context, rec *domain.OperationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OperationRecord, error)
	ListRecent(ctx context.Context, params OperationListParams) ([]domain.OperationRecord, error)
}

// OperationListParams filters the journal.
type OperationListParams struct {
	Account *string
	Kind    *domain.OperationKind
	Limit   int
}
