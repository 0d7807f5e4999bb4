package gestao_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
	"github.com/vladislavdragonenkov/pedidos-client/internal/gestao"
)

func testDraft() domain.Draft {
	return domain.Draft{
		CustomerName:  "Ana Souza",
		Document:      "52998224725",
		Phone:         "11999999999",
		PaymentMethod: domain.PaymentPix,
	}
}

func TestCreateOrder_CapturesID(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pedido/cadastrar" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer srv.Close()

	client := gestao.NewClient(srv.URL)
	id, err := client.CreateOrder(context.Background(), testDraft())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if got["cliente"] != "Ana Souza" || got["cpf"] != "52998224725" || got["telefone"] != "11999999999" {
		t.Fatalf("unexpected payload: %v", got)
	}
	if got["formaPagamento"] != "Pix" {
		t.Fatalf("expected payment method Pix, got %v", got["formaPagamento"])
	}
}

func TestCreateOrder_BadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := gestao.NewClient(srv.URL)
	_, err := client.CreateOrder(context.Background(), testDraft())
	if !errors.Is(err, domain.ErrCreateOrder) {
		t.Fatalf("expected ErrCreateOrder, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus in chain, got %v", err)
	}
}

func TestCreateOrderItem_SendsNumericPrice(t *testing.T) {
	t.Parallel()

	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		raw = string(payload["valorUnitario"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := gestao.NewClient(srv.URL)
	item := domain.OrderLineItem{
		OrderID:   42,
		ProductID: 7,
		Title:     "Açaí 500ml",
		UnitPrice: decimal.RequireFromString("19.9"),
		Quantity:  2,
	}
	if err := client.CreateOrderItem(context.Background(), item); err != nil {
		t.Fatalf("CreateOrderItem failed: %v", err)
	}
	if raw != "19.9" {
		t.Fatalf("expected unquoted numeric price, got %s", raw)
	}
}

func TestListOrders_QueryAndDecode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("dtInicio") != "2026-08-27" || q.Get("dtFim") != "2026-08-30" || q.Get("cpf") != "52998224725" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":1,"cliente":"Ana","cpf":"52998224725","dtPedido":"2026-08-29","formaPagamento":"Pix","status":"R"}]`))
	}))
	defer srv.Close()

	from := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	client := gestao.NewClient(srv.URL)
	orders, err := client.ListOrders(context.Background(), from, to, "52998224725")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].Status != domain.OrderStatusReady {
		t.Fatalf("expected status R, got %q", orders[0].Status)
	}
}

func TestListOrders_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := gestao.NewClient(srv.URL)
	_, err := client.ListOrders(context.Background(), time.Now(), time.Now(), "52998224725")
	if !errors.Is(err, domain.ErrOrdersNotFound) {
		t.Fatalf("expected ErrOrdersNotFound, got %v", err)
	}
}

func TestListOrderItems_DecodesDecimal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("idPedido") != "42" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"id":1,"idPedido":42,"idProduto":7,"titulo":"Açaí 500ml","valorUnitario":19.9,"quantidade":2}]`))
	}))
	defer srv.Close()

	client := gestao.NewClient(srv.URL)
	items, err := client.ListOrderItems(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListOrderItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if want := decimal.RequireFromString("39.8"); !items[0].Total().Equal(want) {
		t.Fatalf("item total = %s, want %s", items[0].Total(), want)
	}
}

func TestImageURLs(t *testing.T) {
	t.Parallel()

	client := gestao.NewClient("https://api.example.com")
	if got := client.CategoryImageURL(3); got != "https://api.example.com/categoria/imagem/3" {
		t.Fatalf("unexpected category image url: %s", got)
	}
	if got := client.ProductImageURL(9); got != "https://api.example.com/produto/imagem/9" {
		t.Fatalf("unexpected product image url: %s", got)
	}
}
