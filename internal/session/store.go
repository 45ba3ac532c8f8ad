package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/powersupps/storefront/internal/domain"
)

// Session is the per-visitor state the storefront keeps between requests:
// the authenticated user (if any), the cart and the last shipping quote.
// It is passed explicitly into every operation that reads or mutates it.
type Session struct {
	ID            string
	UserID        string
	Cart          map[string]int
	ShippingQuote *domain.ShippingQuote
}

func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// Store keeps sessions in memory keyed by an opaque token. The store only
// guards its own map; the hosting layer is expected to run at most one
// mutation per session at a time.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) New() *Session {
	s := &Session{
		ID:   uuid.New().String(),
		Cart: make(map[string]int),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
