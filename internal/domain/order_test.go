package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

func TestOrderStatusLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status domain.OrderStatus
		want   string
	}{
		{domain.OrderStatusAwaiting, "Aguardando Pagamento"},
		{domain.OrderStatusPaymentApproved, "Pagamento Aprovado"},
		{domain.OrderStatusReady, "Pronto"},
		{domain.OrderStatusFinalized, "Finalizado"},
		{domain.OrderStatus("X"), "Cancelado"},
		{domain.OrderStatus(""), "Cancelado"},
	}

	for _, tc := range cases {
		if got := tc.status.Label(); got != tc.want {
			t.Fatalf("Label(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestItemsTotal(t *testing.T) {
	t.Parallel()

	items := []domain.OrderLineItem{
		{Title: "Açaí 500ml", UnitPrice: decimal.RequireFromString("19.90"), Quantity: 2},
		{Title: "Suco", UnitPrice: decimal.RequireFromString("7.50"), Quantity: 1},
	}

	want := decimal.RequireFromString("47.30")
	if got := domain.ItemsTotal(items); !got.Equal(want) {
		t.Fatalf("ItemsTotal = %s, want %s", got, want)
	}

	if got := domain.ItemsTotal(nil); !got.IsZero() {
		t.Fatalf("ItemsTotal(nil) = %s, want 0", got)
	}
}

func TestPaymentMethodValid(t *testing.T) {
	t.Parallel()

	for _, m := range domain.PaymentMethods() {
		if !m.Valid() {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	if domain.PaymentMethod("Cheque").Valid() {
		t.Fatal("expected unknown payment method to be invalid")
	}
}

func TestLineFromProduct(t *testing.T) {
	t.Parallel()

	p := domain.Product{
		ID:          7,
		Title:       "X-Burguer",
		Price:       decimal.RequireFromString("25.00"),
		Description: "com queijo",
		CategoryID:  2,
		ImageRef:    "/produto/imagem/7",
	}

	line := domain.LineFromProduct(p, 3)
	if line.ProductID != 7 || line.Quantity != 3 || line.Title != "X-Burguer" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if want := decimal.RequireFromString("75.00"); !line.Total().Equal(want) {
		t.Fatalf("Total = %s, want %s", line.Total(), want)
	}
}
