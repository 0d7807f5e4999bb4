// Package memory хранит клиентское состояние сессии: корзину,
// аутентифицированного клиента и маркер навигации.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// CartStore — in-memory корзина. Живёт до успешного оформления заказа.
type CartStore struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

// NewCartStore возвращает пустую корзину.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Add кладёт строку в корзину. Повторное добавление того же товара
// суммирует количество, снимок полей товара остаётся от первого добавления.
func (s *CartStore) Add(line domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			s.lines[i].Quantity += line.Quantity
			return
		}
	}
	s.lines = append(s.lines, line)
}

// Lines возвращает копию строк корзины.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Empty сообщает, пуста ли корзина.
func (s *CartStore) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// Total суммирует стоимость корзины.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Clear опустошает корзину.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

var _ domain.CartState = (*CartStore)(nil)
