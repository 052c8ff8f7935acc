package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/wavecrawl/internal/model"
)

// ErrSessionNotFound is returned when events are appended to a session
// that was never saved.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores session snapshots and their event logs.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// SessionSummary is the listing view of a stored session.
type SessionSummary struct {
	ID            model.SessionID
	PlayerID      model.PlayerID
	PlayerName    string
	Class         string
	State         model.SessionState
	Wave          int32
	Turn          int32
	DefeatedCount int32
	PlayerLevel   model.Level
	UpdatedAt     time.Time
}

// EventRecord is one stored battle event with its position in the log.
type EventRecord struct {
	Seq   int64
	Turn  int32
	Event model.BattleEvent
}

// Save upserts the full session snapshot.
func (r *SessionRepository) Save(ctx context.Context, s *model.Session) error {
	snapshot, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", s.ID, err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sessions
		 (session_id, player_id, player_name, class, state, wave, turn,
		  defeated_count, player_level, snapshot, started_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
		 ON CONFLICT (session_id) DO UPDATE SET
		  state=$5, wave=$6, turn=$7, defeated_count=$8, player_level=$9,
		  snapshot=$10, updated_at=NOW()`,
		s.ID, s.Player.ID, s.Player.Name, s.Player.Class, s.State.String(),
		s.Wave, s.Turn, s.DefeatedCount, s.Player.Level, snapshot, s.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	return nil
}

// Load returns the stored snapshot of a session.
// Returns nil, nil if the session does not exist.
func (r *SessionRepository) Load(ctx context.Context, id model.SessionID) (*model.Session, error) {
	var snapshot []byte
	err := r.db.QueryRow(ctx,
		`SELECT snapshot FROM sessions WHERE session_id = $1`, id,
	).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session %s: %w", id, err)
	}

	var s model.Session
	if err := json.Unmarshal(snapshot, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &s, nil
}

// AppendEvents adds the events of one turn to the session log, keeping
// their order. The session row is locked so concurrent appends never
// interleave.
func (r *SessionRepository) AppendEvents(ctx context.Context, id model.SessionID, turn int32, events []model.BattleEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var locked int
	err = tx.QueryRow(ctx,
		`SELECT 1 FROM sessions WHERE session_id = $1 FOR UPDATE`, id,
	).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("append events to %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return fmt.Errorf("locking session %s: %w", id, err)
	}

	var last int64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM session_events WHERE session_id = $1`, id,
	).Scan(&last); err != nil {
		return fmt.Errorf("reading last event seq of %s: %w", id, err)
	}

	batch := &pgx.Batch{}
	for i, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encoding event %d of %s: %w", i, id, err)
		}
		batch.Queue(
			`INSERT INTO session_events (session_id, seq, turn, kind, payload)
			 VALUES ($1,$2,$3,$4,$5)`,
			id, last+int64(i)+1, turn, ev.Kind.String(), payload,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range events {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("inserting events of %s: %w", id, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing event batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing events of %s: %w", id, err)
	}
	return nil
}

// Events returns the full event log of a session in order.
func (r *SessionRepository) Events(ctx context.Context, id model.SessionID) ([]EventRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT seq, turn, payload FROM session_events
		 WHERE session_id = $1 ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events of %s: %w", id, err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var payload []byte
		if err := rows.Scan(&rec.Seq, &rec.Turn, &payload); err != nil {
			return nil, fmt.Errorf("scanning event of %s: %w", id, err)
		}
		if err := json.Unmarshal(payload, &rec.Event); err != nil {
			return nil, fmt.Errorf("decoding event %d of %s: %w", rec.Seq, id, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events of %s: %w", id, err)
	}
	return out, nil
}

// ListActive returns sessions that are not completed, most recently
// updated first. limit <= 0 means no limit.
func (r *SessionRepository) ListActive(ctx context.Context, limit int) ([]SessionSummary, error) {
	query := `
		SELECT session_id, player_id, player_name, class, state,
		       wave, turn, defeated_count, player_level, updated_at
		FROM sessions
		WHERE state <> $1
		ORDER BY updated_at DESC, session_id`
	args := []any{model.SessionCompleted.String()}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying active sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var state string
		if err := rows.Scan(
			&s.ID, &s.PlayerID, &s.PlayerName, &s.Class, &state,
			&s.Wave, &s.Turn, &s.DefeatedCount, &s.PlayerLevel, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if err := s.State.UnmarshalText([]byte(state)); err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}

// Delete removes a session and its event log.
func (r *SessionRepository) Delete(ctx context.Context, id model.SessionID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}
