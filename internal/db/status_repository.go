package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/beastclash/internal/model"
)

// StatusRepository хранит StatusState комбатантов в JSONB.
// Формат совпадает с тем, что пишет save-файл.
type StatusRepository struct {
	db *pgxpool.Pool
}

// NewStatusRepository создаёт новый StatusRepository.
func NewStatusRepository(db *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{db: db}
}

const upsertStatus = `
	INSERT INTO combatant_status (combatant_id, status, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (combatant_id) DO UPDATE SET status = $2, updated_at = now()
`

// Save перезаписывает состояние комбатанта.
func (r *StatusRepository) Save(ctx context.Context, id model.CombatantID, st model.StatusState) error {
	payload, err := encodeStatus(st)
	if err != nil {
		return fmt.Errorf("encoding status of %s: %w", id, err)
	}
	if _, err := r.db.Exec(ctx, upsertStatus, uuid.UUID(id), payload); err != nil {
		return fmt.Errorf("saving status of %s: %w", id, err)
	}
	return nil
}

// SaveTx сохраняет несколько состояний внутри внешней транзакции.
func (r *StatusRepository) SaveTx(ctx context.Context, tx pgx.Tx, states map[model.CombatantID]model.StatusState) error {
	if len(states) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, st := range states {
		payload, err := encodeStatus(st)
		if err != nil {
			return fmt.Errorf("encoding status of %s: %w", id, err)
		}
		batch.Queue(upsertStatus, uuid.UUID(id), payload)
	}

	br := tx.SendBatch(ctx, batch)
	for range states {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("save status batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close status batch: %w", err)
	}
	return nil
}

// Load возвращает сохранённое состояние.
// Если записи нет, возвращает пустое состояние и false.
func (r *StatusRepository) Load(ctx context.Context, id model.CombatantID) (model.StatusState, bool, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT status FROM combatant_status WHERE combatant_id = $1`, uuid.UUID(id),
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewStatusState(), false, nil
	}
	if err != nil {
		return model.StatusState{}, false, fmt.Errorf("loading status of %s: %w", id, err)
	}

	st := model.NewStatusState()
	if err := json.Unmarshal(payload, &st); err != nil {
		return model.StatusState{}, false, fmt.Errorf("decoding status of %s: %w", id, err)
	}
	if st.Weakening == nil {
		st.Weakening = make(map[model.AilmentID]model.AilmentTurns)
	}
	return st, true, nil
}

// Delete удаляет запись (например, когда комбатант выпущен из коллекции).
func (r *StatusRepository) Delete(ctx context.Context, id model.CombatantID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM combatant_status WHERE combatant_id = $1`, uuid.UUID(id)); err != nil {
		return fmt.Errorf("deleting status of %s: %w", id, err)
	}
	return nil
}

func encodeStatus(st model.StatusState) ([]byte, error) {
	if st.Weakening == nil {
		st.Weakening = map[model.AilmentID]model.AilmentTurns{}
	}
	return json.Marshal(st)
}
