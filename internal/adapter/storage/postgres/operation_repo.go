package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultListLimit = 50

// OperationRepo implements ports.OperationRepository using PostgreSQL.
type OperationRepo struct {
	pool Pool
}

// NewOperationRepo creates a new OperationRepo.
func NewOperationRepo(pool Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

const operationColumns = `id, session_id, kind, account, item_id, tx_hash, state, status, error_code, created_at, finished_at`

func (r *OperationRepo) Create(ctx context.Context, rec *domain.OperationRecord) error {
	query := `INSERT INTO marketplace_operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.SessionID, string(rec.Kind), rec.Account,
		itemIDToDB(rec.ItemID), rec.TxHash, string(rec.State), rec.Status,
		rec.ErrorCode, rec.CreatedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// Finish records the terminal state of an operation created earlier.
func (r *OperationRepo) Finish(ctx context.Context, rec *domain.OperationRecord) error {
	query := `UPDATE marketplace_operations
		SET item_id = $1, tx_hash = $2, state = $3, status = $4, error_code = $5, finished_at = $6
		WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		itemIDToDB(rec.ItemID), rec.TxHash, string(rec.State), rec.Status,
		rec.ErrorCode, rec.FinishedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("finish operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish operation %s: no such row", rec.ID)
	}
	return nil
}

func (r *OperationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OperationRecord, error) {
	query := `SELECT ` + operationColumns + ` FROM marketplace_operations WHERE id = $1`

	rec, err := scanOperation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation by id: %w", err)
	}
	return rec, nil
}

// ListRecent returns the newest journal rows first.
func (r *OperationRepo) ListRecent(ctx context.Context, params ports.OperationListParams) ([]domain.OperationRecord, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Account != nil {
		conditions = append(conditions, fmt.Sprintf("account = $%d", argIdx))
		args = append(args, *params.Account)
		argIdx++
	}
	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, string(*params.Kind))
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := fmt.Sprintf(`SELECT %s FROM marketplace_operations %s ORDER BY created_at DESC LIMIT $%d`,
		operationColumns, where, argIdx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var recs []domain.OperationRecord
	for rows.Next() {
		rec, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanOperation(row pgx.Row) (*domain.OperationRecord, error) {
	var (
		rec         domain.OperationRecord
		kind, state string
		itemID      *int64
	)
	err := row.Scan(
		&rec.ID, &rec.SessionID, &kind, &rec.Account,
		&itemID, &rec.TxHash, &state, &rec.Status,
		&rec.ErrorCode, &rec.CreatedAt, &rec.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Kind = domain.OperationKind(kind)
	rec.State = domain.OperationState(state)
	if itemID != nil {
		id := uint64(*itemID)
		rec.ItemID = &id
	}
	return &rec, nil
}

func itemIDToDB(id *uint64) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// Ping implements ports.HealthChecker. It fails when the journal table
// is missing as well as when the database is unreachable.
func (r *OperationRepo) Ping(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `SELECT 1 FROM marketplace_operations LIMIT 0`)
	return err
}

// Name implements ports.HealthChecker.
func (r *OperationRepo) Name() string { return "journal" }
