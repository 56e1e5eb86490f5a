package postgres

import (
	"context"
	"fmt"
)

const operationsSchema = `CREATE TABLE IF NOT EXISTS marketplace_operations (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL,
	kind        TEXT NOT NULL,
	account     TEXT NOT NULL,
	item_id     BIGINT,
	tx_hash     TEXT,
	state       TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT '',
	error_code  TEXT,
	created_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_marketplace_operations_account_created
	ON marketplace_operations (account, created_at DESC)`

// EnsureSchema creates the journal table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, operationsSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
