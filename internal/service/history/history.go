// Package history обслуживает экран «мои заказы»: история за период,
// детализация позиций и фоновый опрос статусов.
package history

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// Сообщения уведомлений экрана истории.
const (
	msgOrdersNotFound = "Pedidos não encontrados!"
	msgItemsNotFound  = "Itens não encontrados!"
	msgDetailFailed   = "Erro ao buscar dados do pedido"
)

// defaultRangeDays — глубина диапазона дат по умолчанию.
const defaultRangeDays = 3

// DefaultRange возвращает диапазон по умолчанию: [сегодня − 3 дня, сегодня].
func DefaultRange(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -defaultRangeDays), now
}

// History держит загруженную историю заказов и транзиентную детализацию
// раскрытого заказа.
type History struct {
	api      domain.OrderAPI
	notifier domain.Notifier
	logger   *log.Entry

	mu          sync.RWMutex
	orders      []domain.Order
	detail      []domain.OrderLineItem
	openOrderID int64
	filter      string
}

// NewHistory создаёт сервис истории заказов.
func NewHistory(api domain.OrderAPI, notifier domain.Notifier, logger *log.Entry) *History {
	if logger == nil {
		logger = log.WithField("component", "history")
	}
	return &History{
		api:      api,
		notifier: notifier,
		logger:   logger,
	}
}

// LoadOrders перечитывает историю за включительный диапазон дат. При любом
// сбое список остаётся прежним, пользователь получает уведомление.
func (h *History) LoadOrders(ctx context.Context, from, to time.Time, document string) error {
	orders, err := h.api.ListOrders(ctx, from, to, document)
	if err != nil {
		h.logger.WithError(err).Debug("orders fetch failed")
		h.notifier.Error(msgOrdersNotFound)
		return err
	}

	h.mu.Lock()
	h.orders = orders
	h.mu.Unlock()
	return nil
}

// Orders возвращает копию загруженного списка.
func (h *History) Orders() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

// LoadOrderDetail загружает позиции одного заказа в транзиентный список
// детализации.
func (h *History) LoadOrderDetail(ctx context.Context, orderID int64) error {
	items, err := h.api.ListOrderItems(ctx, orderID)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", orderID).Debug("order detail fetch failed")
		if errors.Is(err, domain.ErrItemsNotFound) {
			h.notifier.Error(msgItemsNotFound)
		} else {
			h.notifier.Error(msgDetailFailed)
		}
		return err
	}

	h.mu.Lock()
	h.detail = items
	h.mu.Unlock()
	return nil
}

// ToggleOrder раскрывает или сворачивает строку заказа; при раскрытии
// подтягивается детализация.
func (h *History) ToggleOrder(ctx context.Context, orderID int64) error {
	h.mu.Lock()
	if h.openOrderID == orderID {
		h.openOrderID = 0
		h.detail = nil
		h.mu.Unlock()
		return nil
	}
	h.openOrderID = orderID
	h.mu.Unlock()

	return h.LoadOrderDetail(ctx, orderID)
}

// OpenOrderID возвращает идентификатор раскрытого заказа (0 — все свёрнуты).
func (h *History) OpenOrderID() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.openOrderID
}

// Detail возвращает копию детализации раскрытого заказа.
func (h *History) Detail() []domain.OrderLineItem {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.OrderLineItem, len(h.detail))
	copy(out, h.detail)
	return out
}

// DetailTotal суммирует стоимость раскрытого заказа.
func (h *History) DetailTotal() decimal.Decimal {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return domain.ItemsTotal(h.detail)
}

// SetStatusFilter задаёт клиентский фильтр по статусу; пустая строка — все.
func (h *History) SetStatusFilter(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filter = status
}

// FilteredOrders возвращает заказы, прошедшие фильтр: точное сравнение кода
// статуса без учёта регистра. Загруженный список не меняется.
func (h *History) FilteredOrders() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.filter == "" {
		out := make([]domain.Order, len(h.orders))
		copy(out, h.orders)
		return out
	}

	var out []domain.Order
	for _, order := range h.orders {
		if strings.EqualFold(string(order.Status), h.filter) {
			out = append(out, order)
		}
	}
	return out
}
