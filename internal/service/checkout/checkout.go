// Package checkout проводит оформление заказа: черновик персональных данных,
// валидация, создание заголовка и регистрация позиций в management API.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
	"github.com/vladislavdragonenkov/pedidos-client/internal/mask"
	"github.com/vladislavdragonenkov/pedidos-client/internal/metrics"
)

// Сообщения, которые видит пользователь. Тексты зафиксированы продуктом.
const (
	msgFieldsRequired  = "Preencha todos os dados pessoais!"
	msgInvalidDocument = "CPF inválido!"
	msgInvalidPhone    = "Telefone inválido!"
	msgOrderCreated    = "Pedido efetuado com sucesso!"
	msgHeaderFailed    = "Erro ao criar o pedido principal!"
	msgItemsFailed     = "Pedido criado, mas erro ao cadastrar itens!"
)

// Checkout держит черновик заказа и выполняет workflow оформления.
// Черновик мутируется сеттерами, прогоняющими ввод через маски.
type Checkout struct {
	api      domain.OrderAPI
	cart     domain.CartState
	session  domain.SessionState
	router   domain.Router
	notifier domain.Notifier
	logger   *log.Entry
	metrics  *metrics.CheckoutMetrics

	mu         sync.Mutex
	draft      domain.Draft
	errMessage string
	reviewOpen bool
}

// NewCheckout создаёт рабочий экземпляр workflow оформления.
func NewCheckout(
	api domain.OrderAPI,
	cart domain.CartState,
	session domain.SessionState,
	router domain.Router,
	notifier domain.Notifier,
	logger *log.Entry,
) *Checkout {
	c := newCheckout(api, cart, session, router, notifier, logger)
	c.metrics = metrics.NewCheckoutMetrics()
	return c
}

// NewCheckoutWithoutMetrics создаёт workflow без метрик (для тестов).
func NewCheckoutWithoutMetrics(
	api domain.OrderAPI,
	cart domain.CartState,
	session domain.SessionState,
	router domain.Router,
	notifier domain.Notifier,
	logger *log.Entry,
) *Checkout {
	return newCheckout(api, cart, session, router, notifier, logger)
}

func newCheckout(
	api domain.OrderAPI,
	cart domain.CartState,
	session domain.SessionState,
	router domain.Router,
	notifier domain.Notifier,
	logger *log.Entry,
) *Checkout {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Checkout{
		api:      api,
		cart:     cart,
		session:  session,
		router:   router,
		notifier: notifier,
		logger:   logger,
		draft:    domain.Draft{PaymentMethod: domain.PaymentCash},
	}
}

// GuardEntry проверяет, можно ли открыть экран оформления: корзина не пуста
// и пользователь пришёл с экрана корзины. Иначе — редирект на корень каталога.
func (c *Checkout) GuardEntry() bool {
	if c.cart.Empty() || c.router.LastPath() != domain.RouteCart {
		c.logger.WithField("last_path", c.router.LastPath()).Debug("checkout entry refused")
		c.router.NavigateTo(domain.RouteCatalog)
		return false
	}
	return true
}

// SeedFromSession преднаполняет пустые поля черновика данными клиента сессии.
// Уже введённые пользователем значения не перетираются.
func (c *Checkout) SeedFromSession() {
	customer, ok := c.session.Customer()
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft.CustomerName == "" && customer.Name != "" {
		c.draft.CustomerName = customer.Name
	}
	if c.draft.Document == "" && customer.Document != "" {
		c.draft.Document = mask.Document(customer.Document)
	}
	if c.draft.Phone == "" && customer.Phone != "" {
		c.draft.Phone = mask.Phone(customer.Phone)
	}
}

// SetCustomerName сохраняет имя клиента как введено.
func (c *Checkout) SetCustomerName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.CustomerName = v
}

// SetDocument сохраняет CPF, прогоняя ввод через маску.
func (c *Checkout) SetDocument(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Document = mask.Document(v)
}

// SetPhone сохраняет телефон, прогоняя ввод через маску.
func (c *Checkout) SetPhone(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Phone = mask.Phone(v)
}

// SetPaymentMethod сохраняет способ оплаты из закрытого набора.
func (c *Checkout) SetPaymentMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return domain.ErrPaymentMethodInvalid
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PaymentMethod = m
	return nil
}

// Draft возвращает копию текущего черновика.
func (c *Checkout) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// ErrorMessage возвращает текущее inline-сообщение об ошибке валидации.
func (c *Checkout) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

// ReviewOpen сообщает, открыт ли экран подтверждения заказа.
func (c *Checkout) ReviewOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reviewOpen
}

// ReviewOrder валидирует черновик и открывает подтверждение. Порядок проверок
// фиксирован: незаполненные поля, затем CPF, затем телефон; показывается
// только первое нарушенное правило.
func (c *Checkout) ReviewOrder() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	document := mask.Digits(c.draft.Document)
	phone := mask.Digits(c.draft.Phone)

	switch {
	case c.draft.CustomerName == "" || document == "" || phone == "":
		c.errMessage = msgFieldsRequired
		c.reviewOpen = false
		return domain.ErrFieldsRequired
	case !mask.ValidDocument(c.draft.Document):
		c.errMessage = msgInvalidDocument
		c.reviewOpen = false
		return domain.ErrInvalidDocument
	case !mask.ValidPhone(c.draft.Phone):
		c.errMessage = msgInvalidPhone
		c.reviewOpen = false
		return domain.ErrInvalidPhone
	}

	c.errMessage = ""
	c.reviewOpen = true
	return nil
}

// CloseReview закрывает подтверждение без отправки.
func (c *Checkout) CloseReview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reviewOpen = false
}

// ConfirmOrder отправляет заказ: сначала заголовок, затем все позиции
// параллельно. Операция не идемпотентна — повторный вызов после частичного
// сбоя создаст второй заголовок.
//
// Исходы:
//   - заголовок не создан: уведомление об ошибке, позиции не отправляются,
//     локальное состояние не трогается;
//   - часть позиций не создана: уведомление о частичном сбое, корзина и
//     черновик сохраняются, автоматических повторов нет;
//   - всё создано: уведомление об успехе, переход на корень каталога,
//     сброс клиента сессии и корзины.
func (c *Checkout) ConfirmOrder(ctx context.Context, cart []domain.CartLine) error {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.RecordSubmissionStarted()
	}

	draft := c.Draft()
	// CPF и телефон уходят в API без маски.
	draft.Document = mask.Digits(draft.Document)
	draft.Phone = mask.Digits(draft.Phone)

	logger := c.logger.WithField("submission_id", uuid.NewString())

	orderID, err := c.api.CreateOrder(ctx, draft)
	if err != nil {
		logger.WithError(err).Warn("order header creation failed")
		if c.metrics != nil {
			c.metrics.RecordHeaderFailure()
		}
		c.notifier.Error(msgHeaderFailed)
		return err
	}
	logger = logger.WithField("order_id", orderID)

	if err := c.registerItems(ctx, logger, orderID, cart); err != nil {
		logger.WithError(err).Warn("item registration failed, remote order left without full item set")
		if c.metrics != nil {
			c.metrics.RecordPartialFailure()
		}
		c.notifier.Error(msgItemsFailed)
		return err
	}

	c.notifier.Success(msgOrderCreated)
	c.finishSubmission()
	logger.WithField("items", len(cart)).Info("order submitted")

	if c.metrics != nil {
		c.metrics.RecordSubmissionCompleted()
		c.metrics.RecordSubmissionDuration(time.Since(start))
	}
	return nil
}

// registerItems отправляет все позиции параллельно и дожидается каждого
// исхода: первый сбой не обрывает остальные запросы.
func (c *Checkout) registerItems(ctx context.Context, logger *log.Entry, orderID int64, cart []domain.CartLine) error {
	if len(cart) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error

	for _, line := range cart {
		item := domain.OrderLineItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.api.CreateOrderItem(ctx, item); err != nil {
				logger.WithError(err).WithField("product_id", item.ProductID).Warn("item registration failed")
				if c.metrics != nil {
					c.metrics.RecordItemRequest("failed")
				}
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return
			}
			if c.metrics != nil {
				c.metrics.RecordItemRequest("ok")
			}
		}()
	}
	wg.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d items: %w", domain.ErrItemsPartial, len(failures), len(cart), errors.Join(failures...))
	}
	return nil
}

// finishSubmission сбрасывает локальное состояние после полного успеха.
func (c *Checkout) finishSubmission() {
	c.mu.Lock()
	c.reviewOpen = false
	c.draft = domain.Draft{PaymentMethod: domain.PaymentCash}
	c.errMessage = ""
	c.mu.Unlock()

	c.router.NavigateTo(domain.RouteCatalog)
	c.session.ResetCustomer()
	c.cart.Clear()
}
