// Package gestao — HTTP-клиент management API: каталог, заказы, позиции.
// Формат полей (португальские имена) зафиксирован на стороне API.
package gestao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

const dateLayout = "2006-01-02"

func init() {
	// API ожидает valorUnitario числом, а не строкой.
	decimal.MarshalJSONWithoutQuotes = true
}

var apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pedidos_gestao_requests_total",
	Help: "Total number of management API requests grouped by endpoint and result.",
}, []string{"endpoint", "result"})

// StatusError несёт неуспешный HTTP-статус ответа API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %d", e.Code)
}

// Is позволяет распознавать StatusError через errors.Is(err, domain.ErrUnexpectedStatus).
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUnexpectedStatus
}

// IsNotFound проверяет, что ошибка — это ответ API со статусом 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Options задаёт параметры клиента.
type Options struct {
	Logger     *log.Entry
	HTTPClient *http.Client
}

// Option настраивает Client.
type Option func(*Options)

// WithLogger задаёт logger клиента.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithHTTPClient подменяет транспорт (в тестах — httptest-сервер).
func WithHTTPClient(httpc *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = httpc
	}
}

// Client выполняет JSON-запросы к management API. Таймауты и ретраи не
// добавляются: клиент живёт с умолчаниями транспорта, как и остальной поток.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент для API по базовому адресу.
func NewClient(baseURL string, options ...Option) *Client {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "gestao-client")
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}

	return &Client{
		baseURL: baseURL,
		httpc:   httpc,
		logger:  logger,
	}
}

type createOrderRequest struct {
	CustomerName  string               `json:"cliente"`
	Document      string               `json:"cpf"`
	Phone         string               `json:"telefone"`
	PaymentMethod domain.PaymentMethod `json:"formaPagamento"`
}

type createOrderResponse struct {
	ID int64 `json:"id"`
}

// CreateOrder создаёт заголовок заказа. Успехом считаются только 200 и 201;
// идентификатор берётся из тела ответа.
func (c *Client) CreateOrder(ctx context.Context, draft domain.Draft) (int64, error) {
	payload := createOrderRequest{
		CustomerName:  draft.CustomerName,
		Document:      draft.Document,
		Phone:         draft.Phone,
		PaymentMethod: draft.PaymentMethod,
	}

	var resp createOrderResponse
	if err := c.postJSON(ctx, "/pedido/cadastrar", "create_order", payload, &resp); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrCreateOrder, err)
	}

	c.logger.WithField("order_id", resp.ID).Debug("order header created")
	return resp.ID, nil
}

type createItemRequest struct {
	OrderID   int64           `json:"idPedido"`
	ProductID int64           `json:"idProduto"`
	Title     string          `json:"titulo"`
	UnitPrice decimal.Decimal `json:"valorUnitario"`
	Quantity  int32           `json:"quantidade"`
}

// CreateOrderItem регистрирует одну позицию у существующего заказа.
func (c *Client) CreateOrderItem(ctx context.Context, item domain.OrderLineItem) error {
	payload := createItemRequest{
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
	}
	if err := c.postJSON(ctx, "/itens-pedido/cadastrar", "create_item", payload, nil); err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// ListOrders возвращает заказы клиента за включительный диапазон дат.
// 404 и прочие неуспешные исходы схлопываются в ErrOrdersNotFound: для
// вызывающего это одно и то же «истории нет».
func (c *Client) ListOrders(ctx context.Context, from, to time.Time, document string) ([]domain.Order, error) {
	query := url.Values{}
	query.Set("dtInicio", from.Format(dateLayout))
	query.Set("dtFim", to.Format(dateLayout))
	query.Set("cpf", document)

	var orders []domain.Order
	if err := c.getJSON(ctx, "/pedido/buscar-pedidos", query, "list_orders", &orders); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOrdersNotFound, err)
	}
	return orders, nil
}

// ListOrderItems возвращает позиции одного заказа.
func (c *Client) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error) {
	query := url.Values{}
	query.Set("idPedido", strconv.FormatInt(orderID, 10))

	var items []domain.OrderLineItem
	if err := c.getJSON(ctx, "/itens-pedido/buscar-itens", query, "list_items", &items); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrItemsNotFound, err)
		}
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

// ListCategories возвращает категории витрины.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/categoria/buscar-categorias", nil, "list_categories", &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListProducts возвращает все товары витрины; фильтрация по категории — на клиенте.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/produto/buscar-produtos", nil, "list_products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CategoryImageURL строит адрес картинки категории.
func (c *Client) CategoryImageURL(id int64) string {
	return fmt.Sprintf("%s/categoria/imagem/%d", c.baseURL, id)
}

// ProductImageURL строит адрес картинки товара.
func (c *Client) ProductImageURL(id int64) string {
	return fmt.Sprintf("%s/produto/imagem/%d", c.baseURL, id)
}

func (c *Client) postJSON(ctx context.Context, path, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, endpoint, out, http.StatusOK, http.StatusCreated)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, endpoint string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, endpoint, out, http.StatusOK)
}

func (c *Client) do(req *http.Request, endpoint string, out any, accepted ...int) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		apiRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	ok := false
	for _, code := range accepted {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	if !ok {
		apiRequests.WithLabelValues(endpoint, "bad_status").Inc()
		c.logger.WithFields(log.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Debug("management API returned unexpected status")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, &StatusError{Code: resp.StatusCode})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			apiRequests.WithLabelValues(endpoint, "decode_error").Inc()
			return fmt.Errorf("decode response: %w", err)
		}
	}

	apiRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

var _ domain.OrderAPI = (*Client)(nil)
var _ domain.CatalogAPI = (*Client)(nil)
