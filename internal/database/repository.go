package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/tradecv/pkg/models"
)

// Repository stores archived interview sessions and the files exported
// from them.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Session operations

const sessionColumns = `id, catalog, record, transcript, progress, complete, created_at, completed_at`

// CreateSession inserts s, assigning an ID and creation time when unset.
func (r *Repository) CreateSession(ctx context.Context, s *models.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	record, transcript, err := encodeSession(s)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (id, catalog, name, record, transcript, progress, complete, created_at, completed_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.Catalog, s.Record.Name, record, transcript,
		s.Progress, s.Complete, s.CreatedAt, nullTime(s.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// UpdateSession overwrites the stored record, transcript and progress of s.
func (r *Repository) UpdateSession(ctx context.Context, s *models.Session) error {
	record, transcript, err := encodeSession(s)
	if err != nil {
		return err
	}

	query := `UPDATE sessions SET catalog=?, name=?, record=?, transcript=?, progress=?, complete=?, completed_at=?
			  WHERE id=?`
	result, err := r.db.ExecContext(ctx, query, s.Catalog, s.Record.Name, record, transcript,
		s.Progress, s.Complete, nullTime(s.CompletedAt), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

// GetSession loads a session by ID or by an unambiguous ID prefix.
func (r *Repository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("session id is empty: %w", ErrNotFound)
	}

	var rows *sql.Rows
	var err error
	if strings.ContainsAny(id, "%_") {
		rows, err = r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id=?`, id)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id LIKE ? LIMIT 2`, id+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	switch len(sessions) {
	case 0:
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	case 1:
		return sessions[0], nil
	default:
		for _, s := range sessions {
			if s.ID == id {
				return s, nil
			}
		}
		return nil, fmt.Errorf("session %s: %w", id, ErrAmbiguousID)
	}
}

// ListSessions returns every session, newest first.
func (r *Repository) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// DeleteSession removes a session and, by cascade, its exports.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// Export operations

func (r *Repository) CreateExport(ctx context.Context, e *models.Export) error {
	query := `INSERT INTO exports (session_id, format, file_path) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, e.SessionID, e.Format, e.FilePath)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	id, _ := result.LastInsertId()
	e.ID = int(id)
	return nil
}

func (r *Repository) GetSessionExports(ctx context.Context, sessionID string) ([]*models.Export, error) {
	query := `SELECT id, session_id, format, file_path, created_at FROM exports
			  WHERE session_id=? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	exports := []*models.Export{}
	for rows.Next() {
		e := &models.Export{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Format, &e.FilePath, &e.CreatedAt); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

func encodeSession(s *models.Session) (record, transcript string, err error) {
	rec, err := json.Marshal(s.Record.Normalize())
	if err != nil {
		return "", "", fmt.Errorf("failed to encode record: %w", err)
	}
	entries := s.Transcript
	if entries == nil {
		entries = []models.TranscriptEntry{}
	}
	tr, err := json.Marshal(entries)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode transcript: %w", err)
	}
	return string(rec), string(tr), nil
}

func scanSessions(rows *sql.Rows) ([]*models.Session, error) {
	sessions := []*models.Session{}
	for rows.Next() {
		s := &models.Session{}
		var record, transcript string
		var completedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Catalog, &record, &transcript, &s.Progress,
			&s.Complete, &s.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(record), &s.Record); err != nil {
			return nil, fmt.Errorf("session %s: failed to decode record: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(transcript), &s.Transcript); err != nil {
			return nil, fmt.Errorf("session %s: failed to decode transcript: %w", s.ID, err)
		}
		s.Record = s.Record.Normalize()
		if completedAt.Valid {
			t := completedAt.Time
			s.CompletedAt = &t
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
