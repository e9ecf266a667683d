package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlagRepository persists player progression flags (boss kills, titles, zone items).
type FlagRepository struct {
	db *pgxpool.Pool
}

func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{db: db}
}

// Load returns every flag set for player.
func (r *FlagRepository) Load(ctx context.Context, player string) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT flag FROM player_flags WHERE player = $1`, player)
	if err != nil {
		return nil, fmt.Errorf("querying flags for player %q: %w", player, err)
	}
	defer rows.Close()

	flags := make(map[string]bool, 16)
	for rows.Next() {
		var flag string
		if err := rows.Scan(&flag); err != nil {
			return nil, fmt.Errorf("scanning flag row: %w", err)
		}
		flags[flag] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flag rows: %w", err)
	}

	return flags, nil
}

// Save replaces the stored flags of player. Only true flags are written.
func (r *FlagRepository) Save(ctx context.Context, player string, flags map[string]bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("rollback failed", "player", player, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM player_flags WHERE player = $1`, player); err != nil {
		return fmt.Errorf("deleting old flags for player %q: %w", player, err)
	}

	now := time.Now()
	rows := make([][]any, 0, len(flags))
	for flag, set := range flags {
		if set {
			rows = append(rows, []any{player, flag, now})
		}
	}

	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"player_flags"},
			[]string{"player", "flag", "set_at"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("inserting flags for player %q: %w", player, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
