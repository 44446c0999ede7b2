package output

import (
	"context"

	"neocalc/internal/domain/entities"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, id string) (*entities.Session, error)
	FindActiveByOwner(ctx context.Context, ownerID string) (*entities.Session, error)
	FindByOwner(ctx context.Context, ownerID string) ([]entities.Session, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, session *entities.Session) error
	// SetActive marks the given session active and every other session of
	// the owner inactive.
	SetActive(ctx context.Context, ownerID, sessionID string) error
	Delete(ctx context.Context, id string) error
	AppendHistory(ctx context.Context, entry *entities.HistoryEntry) error
	FindHistory(ctx context.Context, sessionID string, limit int) ([]entities.HistoryEntry, error)
}
