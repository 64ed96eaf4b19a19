// Package engine owns the per-turn pipeline: assemble context, select an
// operation through the NLU boundary, validate it against session state, and
// execute it deterministically. All scoring and transform decisions happen
// here, never in the model.
package engine

import (
	"github.com/google/uuid"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/intelligence"
	"github.com/mwinther/scoutline/internal/profile"
)

// Session is the full conversational state for one user. One turn runs at a
// time; the router mutates a session only when the whole turn succeeds.
type Session struct {
	ID            uuid.UUID
	Dataset       *domain.Frame // full ingested dataset, read-only
	ActiveView    *domain.Frame // nil until the first successful start_view
	ActiveProfile *profile.Profile
	Conversation  []intelligence.Turn
}

// NewSession starts a fresh session over an ingested dataset.
func NewSession(dataset *domain.Frame) *Session {
	return &Session{
		ID:      uuid.New(),
		Dataset: dataset,
	}
}

// HasView reports whether a start_view has succeeded in this session.
func (s *Session) HasView() bool { return s.ActiveView != nil }

func (s *Session) remember(query, response string) {
	s.Conversation = append(s.Conversation,
		intelligence.Turn{Role: "user", Content: query},
		intelligence.Turn{Role: "assistant", Content: response},
	)
}
