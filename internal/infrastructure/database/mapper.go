package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"neocalc/internal/domain/entities"
	"neocalc/internal/engine"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// sessionRow mirrors the sessions table.
type sessionRow struct {
	ID            string
	OwnerID       string
	Name          string
	Buffer        string
	LastResult    string
	Mode          string
	ShowFractions bool
	Active        bool
	Context       []byte
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func sessionToDomain(row sessionRow) (*entities.Session, error) {
	ctx := engine.NewContext()
	if len(row.Context) > 0 {
		if err := json.Unmarshal(row.Context, ctx); err != nil {
			return nil, fmt.Errorf("decode session context: %w", err)
		}
	}
	return &entities.Session{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Name:          row.Name,
		Buffer:        row.Buffer,
		LastResult:    row.LastResult,
		Mode:          row.Mode,
		ShowFractions: row.ShowFractions,
		Active:        row.Active,
		Context:       ctx,
		CreatedAt:     pgtypeTimestamptzToTime(row.CreatedAt),
		UpdatedAt:     pgtypeTimestamptzToTime(row.UpdatedAt),
	}, nil
}

func encodeContext(session *entities.Session) ([]byte, error) {
	if session.Context == nil {
		session.Context = engine.NewContext()
	}
	data, err := json.Marshal(session.Context)
	if err != nil {
		return nil, fmt.Errorf("encode session context: %w", err)
	}
	return data, nil
}

type historyRow struct {
	ID         int64
	SessionID  string
	Expression string
	Result     string
	IsError    bool
	CreatedAt  pgtype.Timestamptz
}

func historyToDomain(row historyRow) entities.HistoryEntry {
	return entities.HistoryEntry{
		ID:         row.ID,
		SessionID:  row.SessionID,
		Expression: row.Expression,
		Result:     row.Result,
		IsError:    row.IsError,
		CreatedAt:  pgtypeTimestamptzToTime(row.CreatedAt),
	}
}
