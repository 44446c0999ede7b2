package entities

import (
	"time"

	"neocalc/internal/engine"
)

// DefaultBuffer is the input line of a fresh session.
const DefaultBuffer = "0"

// ModeStandard is the only calculator mode currently shipped; the field is
// persisted so mode-specific keypads survive a restart.
const ModeStandard = "STANDARD"

// Session is one calculator workspace: an input buffer, a result history and
// the evaluation context (variables + user functions) it accumulates. An
// owner can hold several sessions; exactly one of them is active.
type Session struct {
	ID            string
	OwnerID       string
	Name          string
	Buffer        string
	LastResult    string // "" = nothing evaluated yet
	Mode          string
	ShowFractions bool
	Active        bool
	Context       *engine.Context
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type HistoryEntry struct {
	ID         int64
	SessionID  string
	Expression string
	Result     string
	IsError    bool
	CreatedAt  time.Time

	// Err is the evaluation error behind an IsError entry, kept in memory so
	// adapters can localize the message. Not persisted; nil after reload.
	Err error
}

// SessionOverview is the listing projection: enough to render a session
// picker without loading contexts.
type SessionOverview struct {
	ID       string
	Name     string
	IsActive bool
}
