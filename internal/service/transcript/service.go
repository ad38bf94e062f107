package transcript

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/babysitter/backend/internal/model/transcript"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Store keeps the turns of live sessions. Transcripts never outlive their session.
type Store interface {
	Append(ctx context.Context, turn transcript.Turn) error
	Load(ctx context.Context, sessionID string) ([]transcript.Turn, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store suitable for a single instance.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]transcript.Turn
}

// NewMemoryStore bootstraps an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		turns: make(map[string][]transcript.Turn),
	}
}

// Append adds a turn to the session transcript, creating it on first use.
func (s *MemoryStore) Append(_ context.Context, turn transcript.Turn) error {
	turn, err := prepare(turn)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.turns[turn.SessionID]; !ok {
		s.turns[turn.SessionID] = make([]transcript.Turn, 0, 8)
	}
	s.turns[turn.SessionID] = append(s.turns[turn.SessionID], turn)
	return nil
}

// Load returns a copy of the turns recorded for sessionID.
func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]transcript.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]transcript.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

// Delete drops the transcript. Deleting an unknown session is not an error.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.turns, sessionID)
	s.mu.Unlock()
	return nil
}

func prepare(turn transcript.Turn) (transcript.Turn, error) {
	if turn.SessionID == "" {
		return turn, ErrSessionRequired
	}
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	return turn, nil
}
