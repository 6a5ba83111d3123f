package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/beastclash/internal/game/turn"
)

var (
	// ErrUnsealed is returned when a round log is stored before Finalize.
	ErrUnsealed = errors.New("round log is not finalized")
	// ErrVoidRound is returned for a rejected round; it changed nothing and
	// has no slot of its own.
	ErrVoidRound = errors.New("void round is not archived")
)

// ReportRepository stores finalized round logs, one row per executed round.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const insertReport = `
	INSERT INTO battle_reports (battle_id, round, ended, result)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (battle_id, round) DO UPDATE SET ended = $3, result = $4
`

// Save stores one round. Re-saving the same round overwrites it.
func (r *ReportRepository) Save(ctx context.Context, battleID uuid.UUID, res *turn.Result) error {
	payload, err := encodeReport(res)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, insertReport, battleID, res.Round, res.Outcome().BattleEnded, payload); err != nil {
		return fmt.Errorf("saving round %d of battle %s: %w", res.Round, battleID, err)
	}
	return nil
}

// SaveTx stores rounds inside an outer transaction. Void rounds are skipped.
func (r *ReportRepository) SaveTx(ctx context.Context, tx pgx.Tx, battleID uuid.UUID, rounds []*turn.Result) error {
	batch := &pgx.Batch{}
	for _, res := range rounds {
		payload, err := encodeReport(res)
		if errors.Is(err, ErrVoidRound) {
			continue
		}
		if err != nil {
			return err
		}
		batch.Queue(insertReport, battleID, res.Round, res.Outcome().BattleEnded, payload)
	}
	if batch.Len() == 0 {
		return nil
	}

	n := batch.Len()
	br := tx.SendBatch(ctx, batch)
	for range n {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("save report batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close report batch: %w", err)
	}
	return nil
}

// ListRounds loads the stored rounds of a battle in round order. Each
// returned result is sealed.
func (r *ReportRepository) ListRounds(ctx context.Context, battleID uuid.UUID) ([]*turn.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT result FROM battle_reports WHERE battle_id = $1 ORDER BY round`, battleID)
	if err != nil {
		return nil, fmt.Errorf("querying rounds of battle %s: %w", battleID, err)
	}
	defer rows.Close()

	var out []*turn.Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning round row: %w", err)
		}
		res := new(turn.Result)
		if err := json.Unmarshal(payload, res); err != nil {
			return nil, fmt.Errorf("decoding round of battle %s: %w", battleID, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating round rows: %w", err)
	}
	return out, nil
}

// Ended reports whether the final round of the battle was stored.
func (r *ReportRepository) Ended(ctx context.Context, battleID uuid.UUID) (bool, error) {
	var ended bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM battle_reports WHERE battle_id = $1 AND ended)`, battleID,
	).Scan(&ended)
	if err != nil {
		return false, fmt.Errorf("checking end of battle %s: %w", battleID, err)
	}
	return ended, nil
}

func encodeReport(res *turn.Result) ([]byte, error) {
	if !res.Sealed() {
		return nil, fmt.Errorf("round %d: %w", res.Round, ErrUnsealed)
	}
	if res.Outcome().ActionRejected {
		return nil, fmt.Errorf("round %d: %w", res.Round, ErrVoidRound)
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encoding round %d: %w", res.Round, err)
	}
	return payload, nil
}
