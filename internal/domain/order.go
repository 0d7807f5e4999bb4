package domain

import "github.com/shopspring/decimal"

// OrderStatus — однобуквенный код статуса заказа, как его отдаёт management API.
type OrderStatus string

const (
	// OrderStatusAwaiting — заказ создан, оплата ещё не подтверждена.
	OrderStatusAwaiting OrderStatus = "A"
	// OrderStatusPaymentApproved — оплата подтверждена.
	OrderStatusPaymentApproved OrderStatus = "P"
	// OrderStatusReady — заказ готов к выдаче.
	OrderStatusReady OrderStatus = "R"
	// OrderStatusFinalized — заказ выдан и закрыт.
	OrderStatusFinalized OrderStatus = "F"
)

// Label возвращает человекочитаемую подпись статуса. Любой код вне набора
// трактуется как отменённый заказ — так ведёт себя и само API.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusAwaiting:
		return "Aguardando Pagamento"
	case OrderStatusPaymentApproved:
		return "Pagamento Aprovado"
	case OrderStatusReady:
		return "Pronto"
	case OrderStatusFinalized:
		return "Finalizado"
	default:
		return "Cancelado"
	}
}

// Order — заголовок заказа. Запись принадлежит удалённому API: клиент её
// только читает и создаёт, статус напрямую не меняет.
type Order struct {
	ID            int64         `json:"id"`
	Number        string        `json:"numero"`
	CustomerName  string        `json:"cliente"`
	Document      string        `json:"cpf"`
	PlacedAt      string        `json:"dtPedido"`
	FinalizedAt   *string       `json:"dtFInalizacao"` // регистр поля — как в ответе API
	CancelledAt   *string       `json:"dtCancelamento"`
	PaymentMethod PaymentMethod `json:"formaPagamento"`
	Status        OrderStatus   `json:"status"`
}

// OrderLineItem — одна позиция заказа на стороне API.
type OrderLineItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"idPedido"`
	ProductID int64           `json:"idProduto"`
	Title     string          `json:"titulo"`
	UnitPrice decimal.Decimal `json:"valorUnitario"`
	Quantity  int32           `json:"quantidade"`
}

// Total возвращает стоимость позиции: количество × цена за единицу.
func (i OrderLineItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// ItemsTotal суммирует стоимость набора позиций.
func ItemsTotal(items []OrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
