package input

import (
	"context"

	"neocalc/internal/domain/entities"
)

type SessionUseCase interface {
	ActiveSession(ctx context.Context, ownerID string) (*entities.Session, error)
	Overview(ctx context.Context, ownerID string) ([]entities.SessionOverview, error)
	CreateSession(ctx context.Context, ownerID string) (*entities.Session, error)
	SwitchSession(ctx context.Context, ownerID, sessionID string) (*entities.Session, error)
	RenameSession(ctx context.Context, ownerID, sessionID, newName string) error
	DeleteSession(ctx context.Context, ownerID, sessionID string) error

	Input(ctx context.Context, ownerID, text string) (string, error)
	Clear(ctx context.Context, ownerID string) (string, error)
	Backspace(ctx context.Context, ownerID string) (string, error)

	Evaluate(ctx context.Context, ownerID string) (*entities.HistoryEntry, error)
	EvaluateExpression(ctx context.Context, ownerID, expression string) (*entities.HistoryEntry, error)
	ConvertBase(ctx context.Context, ownerID string, base int) (string, error)
	History(ctx context.Context, ownerID string) ([]entities.HistoryEntry, error)
	SetFractionDisplay(ctx context.Context, ownerID string, enabled bool) error
}
