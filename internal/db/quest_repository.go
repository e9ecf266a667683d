package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestRepository persists quest progress per player.
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository.
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// Load returns active quests with their kill counts and the completed quest ids.
func (r *QuestRepository) Load(ctx context.Context, player string) (map[string]int, []string, error) {
	query := `
		SELECT quest_id, current, completed
		FROM quest_progress
		WHERE player = $1
		ORDER BY quest_id
	`

	rows, err := r.db.Query(ctx, query, player)
	if err != nil {
		return nil, nil, fmt.Errorf("querying quests for player %q: %w", player, err)
	}
	defer rows.Close()

	active := make(map[string]int, 8)
	var completed []string
	for rows.Next() {
		var (
			id      string
			current int
			done    bool
		)
		if err := rows.Scan(&id, &current, &done); err != nil {
			return nil, nil, fmt.Errorf("scanning quest row: %w", err)
		}
		if done {
			completed = append(completed, id)
			continue
		}
		active[id] = current
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating quest rows: %w", err)
	}

	return active, completed, nil
}

// Save replaces the stored quest progress of player.
func (r *QuestRepository) Save(ctx context.Context, player string, active map[string]int, completed []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("rollback failed", "player", player, "error", err)
		}
	}()

	if err := r.SaveTx(ctx, tx, player, active, completed); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SaveTx saves quest progress within an existing transaction.
func (r *QuestRepository) SaveTx(ctx context.Context, tx pgx.Tx, player string, active map[string]int, completed []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM quest_progress WHERE player = $1`, player); err != nil {
		return fmt.Errorf("deleting old quest progress for player %q: %w", player, err)
	}

	rows := make([][]any, 0, len(active)+len(completed))
	for id, current := range active {
		rows = append(rows, []any{player, id, current, false})
	}
	seen := make(map[string]bool, len(completed))
	for _, id := range completed {
		if _, dup := active[id]; dup || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, []any{player, id, 0, true})
	}

	if len(rows) == 0 {
		return nil
	}

	// Вставляем через COPY
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"quest_progress"},
		[]string{"player", "quest_id", "current", "completed"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting quest progress for player %q: %w", player, err)
	}

	return nil
}
