package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/product-sheet-extractor/internal/workflow"
)

// Session is one browser page session and its workflow controller.
type Session struct {
	ID         uuid.UUID
	Controller *workflow.Controller
	CreatedAt  time.Time
	LastSeenAt time.Time
}

type SessionRepository interface {
	Create(controller *workflow.Controller) *Session
	FindByID(id uuid.UUID) (*Session, bool)
	Touch(id uuid.UUID)
	DeleteIdle(before time.Time) int
	Count() int
}

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewSessionRepository() SessionRepository {
	return newSessionRepository(time.Now)
}

func newSessionRepository(now func() time.Time) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*Session),
		now:      now,
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(controller *workflow.Controller) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	session := &Session{
		ID:         uuid.New(),
		Controller: controller,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	r.sessions[session.ID] = session
	return session
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	return session, ok
}

// Touch implements SessionRepository.
func (r *sessionRepository) Touch(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.LastSeenAt = r.now()
	}
}

// DeleteIdle implements SessionRepository. Sessions with a submission in
// flight are kept regardless of age.
func (r *sessionRepository) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if !session.LastSeenAt.Before(before) {
			continue
		}
		if session.Controller.State() == workflow.StateLoading {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
