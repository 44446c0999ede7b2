package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"neocalc/internal/domain"
	"neocalc/internal/domain/entities"
	"neocalc/internal/engine"
	"neocalc/internal/ports/output"
)

// SessionService implements the calculator use cases on top of a session
// repository. Evaluation state lives inside the session entity; the service
// is stateless and safe to share.
type SessionService struct {
	sessionRepo  output.SessionRepository
	historyLimit int
}

func NewSessionService(sessionRepo output.SessionRepository, historyLimit int) *SessionService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &SessionService{
		sessionRepo:  sessionRepo,
		historyLimit: historyLimit,
	}
}

// ActiveSession returns the owner's active session, creating "Session 1" on
// first contact.
func (s *SessionService) ActiveSession(ctx context.Context, ownerID string) (*entities.Session, error) {
	session, err := s.sessionRepo.FindActiveByOwner(ctx, ownerID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}
	return s.CreateSession(ctx, ownerID)
}

func (s *SessionService) Overview(ctx context.Context, ownerID string) ([]entities.SessionOverview, error) {
	sessions, err := s.sessionRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	overview := make([]entities.SessionOverview, len(sessions))
	for i, session := range sessions {
		overview[i] = entities.SessionOverview{
			ID:       session.ID,
			Name:     session.Name,
			IsActive: session.Active,
		}
	}
	sort.Slice(overview, func(i, j int) bool { return overview[i].Name < overview[j].Name })
	return overview, nil
}

// CreateSession creates "Session N" for the owner and makes it active.
func (s *SessionService) CreateSession(ctx context.Context, ownerID string) (*entities.Session, error) {
	count, err := s.sessionRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	session := &entities.Session{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    fmt.Sprintf("Session %d", count+1),
		Buffer:  entities.DefaultBuffer,
		Mode:    entities.ModeStandard,
		Context: engine.NewContext(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.SetActive(ctx, ownerID, session.ID); err != nil {
		return nil, err
	}
	session.Active = true
	return session, nil
}

func (s *SessionService) SwitchSession(ctx context.Context, ownerID, sessionID string) (*entities.Session, error) {
	session, err := s.ownedSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.SetActive(ctx, ownerID, session.ID); err != nil {
		return nil, err
	}
	session.Active = true
	return session, nil
}

func (s *SessionService) RenameSession(ctx context.Context, ownerID, sessionID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ErrSessionNotFound
	}
	session, err := s.ownedSession(ctx, ownerID, sessionID)
	if err != nil {
		return err
	}
	session.Name = newName
	return s.sessionRepo.Update(ctx, session)
}

// DeleteSession removes a session; the last remaining session of an owner
// cannot be deleted. When the active session is deleted another one becomes
// active.
func (s *SessionService) DeleteSession(ctx context.Context, ownerID, sessionID string) error {
	session, err := s.ownedSession(ctx, ownerID, sessionID)
	if err != nil {
		return err
	}
	count, err := s.sessionRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return domain.ErrCannotDeleteLastSession
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return err
	}
	if !session.Active {
		return nil
	}
	remaining, err := s.sessionRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}
	return s.sessionRepo.SetActive(ctx, ownerID, remaining[0].ID)
}

// Input appends keypad text to the buffer; a fresh "0" buffer is replaced
// unless the input starts a decimal fraction.
func (s *SessionService) Input(ctx context.Context, ownerID, text string) (string, error) {
	return s.updateBuffer(ctx, ownerID, func(buffer string) string {
		if buffer == entities.DefaultBuffer && text != "." {
			return text
		}
		return buffer + text
	})
}

func (s *SessionService) Clear(ctx context.Context, ownerID string) (string, error) {
	return s.updateBuffer(ctx, ownerID, func(string) string {
		return entities.DefaultBuffer
	})
}

func (s *SessionService) Backspace(ctx context.Context, ownerID string) (string, error) {
	return s.updateBuffer(ctx, ownerID, func(buffer string) string {
		if buffer == "" || buffer == entities.DefaultBuffer {
			return entities.DefaultBuffer
		}
		trimmed := buffer[:len(buffer)-1]
		if trimmed == "" {
			return entities.DefaultBuffer
		}
		return trimmed
	})
}

func (s *SessionService) updateBuffer(ctx context.Context, ownerID string, op func(string) string) (string, error) {
	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return "", err
	}
	session.Buffer = op(session.Buffer)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", err
	}
	return session.Buffer, nil
}

// Evaluate runs the active session's buffer.
func (s *SessionService) Evaluate(ctx context.Context, ownerID string) (*entities.HistoryEntry, error) {
	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, session, session.Buffer)
}

// EvaluateExpression runs an expression directly against the active session,
// bypassing the buffer.
func (s *SessionService) EvaluateExpression(ctx context.Context, ownerID, expression string) (*entities.HistoryEntry, error) {
	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, session, expression)
}

// evaluate records the outcome in the history either way. An evaluation
// failure is a result, not an error return: the entry carries the failure and
// the session stays usable, with the buffer left untouched so the input can
// be fixed.
func (s *SessionService) evaluate(ctx context.Context, session *entities.Session, expression string) (*entities.HistoryEntry, error) {
	entry := &entities.HistoryEntry{
		SessionID:  session.ID,
		Expression: expression,
	}

	value, evalErr := engine.Evaluate(expression, session.Context)
	if evalErr != nil {
		entry.Result = evalErr.Error()
		entry.IsError = true
		entry.Err = evalErr
	} else {
		if session.ShowFractions {
			entry.Result = engine.FormatNumber(value)
		} else {
			entry.Result = engine.FormatNumberDecimal(value)
		}
		session.Buffer = entry.Result
		session.LastResult = entry.Result
		// The "Ans" key reads back the previous result.
		session.Context.SetVar("ans", value)
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ConvertBase reformats the buffer's integer value in the given base
// (16, 8 or 2) and stores it back as the buffer.
func (s *SessionService) ConvertBase(ctx context.Context, ownerID string, base int) (string, error) {
	var prefix string
	switch base {
	case 16:
		prefix = "0x"
	case 8:
		prefix = "0o"
	case 2:
		prefix = "0b"
	default:
		return "", fmt.Errorf("convert base: unsupported base %d", base)
	}

	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return "", err
	}
	value, err := engine.Evaluate(session.Buffer, session.Context)
	if err != nil {
		return "", err
	}
	if value.Kind() != engine.KindInteger {
		return "", domain.ErrNotAnInteger
	}

	digits := value.Int().Text(base)
	if base == 16 {
		digits = strings.ToUpper(digits)
	}
	session.Buffer = prefix + digits
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", err
	}
	return session.Buffer, nil
}

func (s *SessionService) History(ctx context.Context, ownerID string) ([]entities.HistoryEntry, error) {
	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.FindHistory(ctx, session.ID, s.historyLimit)
}

func (s *SessionService) SetFractionDisplay(ctx context.Context, ownerID string, enabled bool) error {
	session, err := s.ActiveSession(ctx, ownerID)
	if err != nil {
		return err
	}
	session.ShowFractions = enabled
	return s.sessionRepo.Update(ctx, session)
}

func (s *SessionService) ownedSession(ctx context.Context, ownerID, sessionID string) (*entities.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != ownerID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
