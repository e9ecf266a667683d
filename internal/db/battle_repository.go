package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BattleRecord is one finished battle as stored in battle_records.
type BattleRecord struct {
	ID          uuid.UUID
	Player      string
	Mode        string
	Outcome     string
	Zone        string
	Enemies     []string
	Gold        int
	XP          int
	Elapsed     float64
	DamageDealt int
	DamageTaken int
	BossPhase   int // -1 outside boss battles
	StartedAt   time.Time
	EndedAt     time.Time
}

// BattleRepository stores the battle journal.
type BattleRepository struct {
	db *pgxpool.Pool
}

func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

var battleColumns = []string{
	"id", "player", "mode", "outcome", "zone", "enemies", "gold", "xp",
	"elapsed", "damage_dealt", "damage_taken", "boss_phase", "started_at", "ended_at",
}

func (rec *BattleRecord) values() []any {
	enemies := rec.Enemies
	if enemies == nil {
		enemies = []string{}
	}
	return []any{
		rec.ID, rec.Player, rec.Mode, rec.Outcome, rec.Zone, enemies, rec.Gold, rec.XP,
		rec.Elapsed, rec.DamageDealt, rec.DamageTaken, rec.BossPhase, rec.StartedAt, rec.EndedAt,
	}
}

// Insert stores a single record.
func (r *BattleRepository) Insert(ctx context.Context, rec *BattleRecord) error {
	query := `
		INSERT INTO battle_records (id, player, mode, outcome, zone, enemies, gold, xp,
			elapsed, damage_dealt, damage_taken, boss_phase, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if _, err := r.db.Exec(ctx, query, rec.values()...); err != nil {
		return fmt.Errorf("inserting battle record %s: %w", rec.ID, err)
	}
	return nil
}

// InsertBatch stores records in one COPY round trip.
func (r *BattleRepository) InsertBatch(ctx context.Context, recs []*BattleRecord) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, rec.values())
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"battle_records"}, battleColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copying %d battle records: %w", len(recs), err)
	}
	if int(n) != len(recs) {
		return fmt.Errorf("copied %d of %d battle records", n, len(recs))
	}
	return nil
}

// Recent returns up to limit records of player, newest first.
func (r *BattleRepository) Recent(ctx context.Context, player string, limit int) ([]*BattleRecord, error) {
	query := `
		SELECT id, player, mode, outcome, zone, enemies, gold, xp,
			elapsed, damage_dealt, damage_taken, boss_phase, started_at, ended_at
		FROM battle_records
		WHERE player = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, player, limit)
	if err != nil {
		return nil, fmt.Errorf("querying battle records for player %q: %w", player, err)
	}
	defer rows.Close()

	recs := make([]*BattleRecord, 0, limit)
	for rows.Next() {
		rec := &BattleRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.Player, &rec.Mode, &rec.Outcome, &rec.Zone, &rec.Enemies, &rec.Gold, &rec.XP,
			&rec.Elapsed, &rec.DamageDealt, &rec.DamageTaken, &rec.BossPhase, &rec.StartedAt, &rec.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning battle record row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle record rows: %w", err)
	}

	return recs, nil
}

// OutcomeCounts returns how many battles of player ended with each outcome.
func (r *BattleRepository) OutcomeCounts(ctx context.Context, player string) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT outcome, count(*) FROM battle_records WHERE player = $1 GROUP BY outcome`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes for player %q: %w", player, err)
	}
	defer rows.Close()

	counts := make(map[string]int, 4)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning outcome row: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome rows: %w", err)
	}

	return counts, nil
}
