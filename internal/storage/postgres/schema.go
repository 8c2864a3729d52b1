package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS submitted_spot_entries (
		block_timestamp bigint,
		source_timestamp bigint,
		event_index bigint,
		source numeric,
		publisher numeric,
		token_symbol varchar(10),
		price numeric,
		volume numeric,
		_cursor bigint
	)`,
	`CREATE TABLE IF NOT EXISTS liquidations (
		block_timestamp bigint,
		event_index bigint,
		transaction_hash bytea,
		liquidated_user_address bytea,
		collateral_token varchar(10),
		collateral_token_amount numeric,
		debt_token varchar(10),
		debt_token_amount numeric,
		_cursor bigint
	)`,
	`CREATE INDEX IF NOT EXISTS submitted_spot_entries_block_timestamp_idx
		ON submitted_spot_entries (block_timestamp)`,
	`CREATE INDEX IF NOT EXISTS liquidations_block_timestamp_idx
		ON liquidations (block_timestamp)`,
}

// EnsureSchema creates both event tables and their timestamp indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
