package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// SessionStore держит аутентифицированного клиента текущей сессии.
type SessionStore struct {
	mu       sync.RWMutex
	customer domain.Customer
	present  bool
}

// NewSessionStore возвращает пустую сессию.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// SetCustomer привязывает клиента к сессии.
func (s *SessionStore) SetCustomer(c domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = c
	s.present = true
}

// Customer возвращает клиента сессии, если он привязан.
func (s *SessionStore) Customer() (domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer, s.present
}

// ResetCustomer снимает привязку клиента; выполняется после успешного оформления.
func (s *SessionStore) ResetCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = domain.Customer{}
	s.present = false
}

var _ domain.SessionState = (*SessionStore)(nil)
