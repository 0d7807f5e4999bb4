package domain

import (
	"context"
	"time"
)

// Маршруты клиента. Гард оформления опирается на последний посещённый маршрут.
const (
	RouteCatalog  = "/"
	RouteOrders   = "/meus-pedidos"
	RouteCart     = "/carrinho"
	RouteCheckout = "/dados-pessoais"
)

// OrderAPI описывает операции management API над заказами и их позициями.
type OrderAPI interface {
	// CreateOrder создаёт заголовок заказа и возвращает его идентификатор.
	// Document и Phone черновика должны быть переданы без маски.
	CreateOrder(ctx context.Context, draft Draft) (int64, error)
	// CreateOrderItem регистрирует одну позицию у существующего заказа.
	CreateOrderItem(ctx context.Context, item OrderLineItem) error
	// ListOrders возвращает заказы клиента за включительный диапазон дат.
	ListOrders(ctx context.Context, from, to time.Time, document string) ([]Order, error)
	// ListOrderItems возвращает позиции одного заказа.
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderLineItem, error)
}

// CatalogAPI описывает операции management API над витриной.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListProducts(ctx context.Context) ([]Product, error)
	// CategoryImageURL и ProductImageURL строят адреса бинарных картинок;
	// сами картинки загружает встраивающий UI.
	CategoryImageURL(id int64) string
	ProductImageURL(id int64) string
}

// Notifier — глобальный sink всплывающих уведомлений.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Router — клиентская навигация с маркером последнего посещённого маршрута.
type Router interface {
	NavigateTo(path string)
	LastPath() string
}

// CartState — узкая способность чтения и сброса корзины, которой достаточно
// workflow оформления.
type CartState interface {
	Lines() []CartLine
	Empty() bool
	Clear()
}

// SessionState — доступ к аутентифицированному клиенту сессии.
type SessionState interface {
	Customer() (Customer, bool)
	ResetCustomer()
}
