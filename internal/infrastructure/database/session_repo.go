package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"neocalc/internal/domain"
	"neocalc/internal/domain/entities"
	"neocalc/internal/ports/output"
)

var _ output.SessionRepository = (*SessionRepository)(nil)

const sessionColumns = `id, owner_id, name, buffer, last_result, mode, show_fractions, active, context, created_at, updated_at`

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) error {
	contextJSON, err := encodeContext(session)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (id, owner_id, name, buffer, last_result, mode, show_fractions, active, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		session.ID, session.OwnerID, session.Name, session.Buffer, session.LastResult,
		session.Mode, session.ShowFractions, session.Active, contextJSON,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	session.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	session.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entities.Session, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return r.scanSession(row, "get session by id")
}

func (r *SessionRepository) FindActiveByOwner(ctx context.Context, ownerID string) (*entities.Session, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE owner_id = $1 AND active`, ownerID)
	return r.scanSession(row, "get active session")
}

func (r *SessionRepository) FindByOwner(ctx context.Context, ownerID string) ([]entities.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by owner: %w", err)
	}
	defer rows.Close()

	var out []entities.Session
	for rows.Next() {
		var sr sessionRow
		if err := scanSessionRow(rows, &sr); err != nil {
			return nil, fmt.Errorf("get sessions by owner: %w", err)
		}
		session, err := sessionToDomain(sr)
		if err != nil {
			return nil, err
		}
		out = append(out, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get sessions by owner: %w", err)
	}
	return out, nil
}

func (r *SessionRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entities.Session) error {
	contextJSON, err := encodeContext(session)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET name = $2, buffer = $3, last_result = $4, mode = $5,
		    show_fractions = $6, context = $7, updated_at = now()
		WHERE id = $1`,
		session.ID, session.Name, session.Buffer, session.LastResult,
		session.Mode, session.ShowFractions, contextJSON,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// SetActive flips the owner's active flag in one transaction so at most one
// session is ever active.
func (r *SessionRepository) SetActive(ctx context.Context, ownerID, sessionID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set active session: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE sessions SET active = false WHERE owner_id = $1 AND active`, ownerID); err != nil {
		return fmt.Errorf("set active session: %w", err)
	}
	tag, err := tx.Exec(ctx,
		`UPDATE sessions SET active = true WHERE id = $1 AND owner_id = $2`, sessionID, ownerID)
	if err != nil {
		return fmt.Errorf("set active session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return tx.Commit(ctx)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) AppendHistory(ctx context.Context, entry *entities.HistoryEntry) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO history_entries (session_id, expression, result, is_error)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		entry.SessionID, entry.Expression, entry.Result, entry.IsError,
	)
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	entry.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return nil
}

func (r *SessionRepository) FindHistory(ctx context.Context, sessionID string, limit int) ([]entities.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, expression, result, is_error, created_at
		FROM history_entries
		WHERE session_id = $1
		ORDER BY id DESC
		LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	var out []entities.HistoryEntry
	for rows.Next() {
		var hr historyRow
		if err := rows.Scan(&hr.ID, &hr.SessionID, &hr.Expression, &hr.Result, &hr.IsError, &hr.CreatedAt); err != nil {
			return nil, fmt.Errorf("get history: %w", err)
		}
		out = append(out, historyToDomain(hr))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return out, nil
}

func (r *SessionRepository) scanSession(row pgx.Row, op string) (*entities.Session, error) {
	var sr sessionRow
	err := row.Scan(&sr.ID, &sr.OwnerID, &sr.Name, &sr.Buffer, &sr.LastResult, &sr.Mode,
		&sr.ShowFractions, &sr.Active, &sr.Context, &sr.CreatedAt, &sr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sessionToDomain(sr)
}

func scanSessionRow(rows pgx.Rows, sr *sessionRow) error {
	return rows.Scan(&sr.ID, &sr.OwnerID, &sr.Name, &sr.Buffer, &sr.LastResult, &sr.Mode,
		&sr.ShowFractions, &sr.Active, &sr.Context, &sr.CreatedAt, &sr.UpdatedAt)
}
