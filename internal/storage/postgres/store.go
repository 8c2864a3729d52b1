package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/config"
	"liquidationScope/internal/model"
	"liquidationScope/internal/storage"
)

var _ storage.EventStore = (*Store)(nil)

// Store reads and writes the oracle and market event tables.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// BuildConnString builds a PostgreSQL connection string from discrete parts.
func BuildConnString(cfg config.DatabaseConfig) string {
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		sslMode,
	)
}

// Connect opens a pool using cfg.DSN, or the discrete parts when it is empty,
// and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	connStr := cfg.DSN
	if connStr == "" {
		if cfg.Host == "" || cfg.Name == "" {
			return nil, fmt.Errorf("pg dsn or host and database are required")
		}
		connStr = BuildConnString(cfg)
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// DistinctTimestamps returns the ascending union of block timestamps of both
// tables that are strictly greater than after.
func (s *Store) DistinctTimestamps(ctx context.Context, after int64, limit int) ([]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT block_timestamp FROM (
			SELECT block_timestamp FROM submitted_spot_entries WHERE block_timestamp > $1
			UNION
			SELECT block_timestamp FROM liquidations WHERE block_timestamp > $1
		) AS t
		ORDER BY block_timestamp
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, err
	}

	timestamps, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	return timestamps, nil
}

// SpotEntriesAt returns the oracle submissions recorded at ts.
func (s *Store) SpotEntriesAt(ctx context.Context, ts int64) ([]model.SubmittedSpotEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT block_timestamp, source_timestamp, event_index, source, publisher, token_symbol, price, volume
		FROM submitted_spot_entries
		WHERE block_timestamp = $1
		ORDER BY event_index
	`, ts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SubmittedSpotEntry
	for rows.Next() {
		var (
			entry                            model.SubmittedSpotEntry
			symbol                           string
			source, publisher, price, volume pgtype.Numeric
		)
		if err := rows.Scan(
			&entry.BlockTimestamp,
			&entry.SourceTimestamp,
			&entry.EventIndex,
			&source,
			&publisher,
			&symbol,
			&price,
			&volume,
		); err != nil {
			return nil, err
		}

		entry.TokenSymbol, err = asset.ParseSymbol(symbol)
		if err != nil {
			return nil, err
		}
		if entry.Source, err = fromNumeric(source); err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		if entry.Publisher, err = fromNumeric(publisher); err != nil {
			return nil, fmt.Errorf("publisher: %w", err)
		}
		if entry.Price, err = fromNumeric(price); err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
		if entry.Volume, err = fromNumeric(volume); err != nil {
			return nil, fmt.Errorf("volume: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LiquidationsAt returns the market liquidations recorded at ts.
func (s *Store) LiquidationsAt(ctx context.Context, ts int64) ([]model.Liquidation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT block_timestamp, event_index, transaction_hash, liquidated_user_address,
			collateral_token, collateral_token_amount, debt_token, debt_token_amount
		FROM liquidations
		WHERE block_timestamp = $1
		ORDER BY event_index
	`, ts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Liquidation
	for rows.Next() {
		var (
			liq                    model.Liquidation
			txHash, user           []byte
			collateral, debt       string
			collateralAmt, debtAmt pgtype.Numeric
		)
		if err := rows.Scan(
			&liq.BlockTimestamp,
			&liq.EventIndex,
			&txHash,
			&user,
			&collateral,
			&collateralAmt,
			&debt,
			&debtAmt,
		); err != nil {
			return nil, err
		}

		liq.TransactionHash = common.BytesToHash(txHash)
		liq.LiquidatedUserAddress = common.BytesToHash(user)
		if liq.CollateralToken, err = asset.ParseSymbol(collateral); err != nil {
			return nil, err
		}
		if liq.DebtToken, err = asset.ParseSymbol(debt); err != nil {
			return nil, err
		}
		if liq.CollateralTokenAmount, err = fromNumeric(collateralAmt); err != nil {
			return nil, fmt.Errorf("collateral amount: %w", err)
		}
		if liq.DebtTokenAmount, err = fromNumeric(debtAmt); err != nil {
			return nil, fmt.Errorf("debt amount: %w", err)
		}
		out = append(out, liq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertSpotEntries writes oracle submissions in a single batch.
func (s *Store) InsertSpotEntries(ctx context.Context, entries []model.SubmittedSpotEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO submitted_spot_entries (
				block_timestamp, source_timestamp, event_index, source, publisher, token_symbol, price, volume
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			e.BlockTimestamp,
			e.SourceTimestamp,
			e.EventIndex,
			toNumeric(e.Source),
			toNumeric(e.Publisher),
			e.TokenSymbol.String(),
			toNumeric(e.Price),
			toNumeric(e.Volume),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertLiquidations writes market liquidations in a single batch.
func (s *Store) InsertLiquidations(ctx context.Context, liquidations []model.Liquidation) error {
	if len(liquidations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range liquidations {
		batch.Queue(`
			INSERT INTO liquidations (
				block_timestamp, event_index, transaction_hash, liquidated_user_address,
				collateral_token, collateral_token_amount, debt_token, debt_token_amount
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			l.BlockTimestamp,
			l.EventIndex,
			l.TransactionHash.Bytes(),
			l.LiquidatedUserAddress.Bytes(),
			l.CollateralToken.String(),
			toNumeric(l.CollateralTokenAmount),
			l.DebtToken.String(),
			toNumeric(l.DebtTokenAmount),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range liquidations {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
