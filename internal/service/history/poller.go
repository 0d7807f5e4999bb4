package history

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

const defaultPollInterval = 10 * time.Second

// Уведомления фонового опроса.
const (
	msgOrderReady     = "Seu pedido já está pronto!"
	msgPaymentPending = "Há pedidos pendentes de pagamento!"
)

var (
	pollTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedidos_poller_ticks_total",
		Help: "Total number of status poll ticks grouped by result.",
	}, []string{"result"})
	pollNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedidos_poller_notifications_total",
		Help: "Total number of notifications raised by the status poller.",
	}, []string{"kind"})
	pollLastOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pedidos_poller_last_orders",
		Help: "Number of orders returned by the most recent successful poll tick.",
	})
)

// ErrorPolicy задаёт реакцию фонового опроса на сбои запроса.
type ErrorPolicy string

const (
	// ErrorPolicySwallow — сбой тика подавляется: ни уведомления, ни смены
	// состояния; цикл продолжается. Это осознанная политика, а не недосмотр.
	ErrorPolicySwallow ErrorPolicy = "swallow"
)

// PollerOptions задаёт параметры фонового опроса.
type PollerOptions struct {
	Logger   *log.Entry
	Interval time.Duration
	From     time.Time
	To       time.Time
}

// PollerOption настраивает Poller.
type PollerOption func(*PollerOptions)

// WithLogger задаёт logger опроса.
func WithLogger(logger *log.Entry) PollerOption {
	return func(opts *PollerOptions) {
		opts.Logger = logger
	}
}

// WithInterval задаёт период опроса.
func WithInterval(interval time.Duration) PollerOption {
	return func(opts *PollerOptions) {
		opts.Interval = interval
	}
}

// WithDateRange задаёт диапазон дат вместо диапазона по умолчанию.
func WithDateRange(from, to time.Time) PollerOption {
	return func(opts *PollerOptions) {
		opts.From = from
		opts.To = to
	}
}

// Poller периодически перечитывает заказы клиента и поднимает не больше
// одного уведомления за тик: «заказ готов» приоритетнее «ожидает оплаты».
type Poller struct {
	api      domain.OrderAPI
	notifier domain.Notifier
	logger   *log.Entry

	document string
	from     time.Time
	to       time.Time
	interval time.Duration
	policy   ErrorPolicy
}

// NewPoller создаёт фоновый опрос статусов для клиента с данным CPF.
func NewPoller(api domain.OrderAPI, notifier domain.Notifier, document string, options ...PollerOption) *Poller {
	opts := PollerOptions{
		Interval: defaultPollInterval,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "status-poller")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultPollInterval
	}
	if opts.From.IsZero() || opts.To.IsZero() {
		opts.From, opts.To = DefaultRange(time.Now())
	}

	return &Poller{
		api:      api,
		notifier: notifier,
		logger:   logger,
		document: document,
		from:     opts.From,
		to:       opts.To,
		interval: opts.Interval,
		policy:   ErrorPolicySwallow,
	}
}

// Policy возвращает действующую политику обработки ошибок тика.
func (p *Poller) Policy() ErrorPolicy {
	return p.policy
}

// Run опрашивает API сразу и затем каждый период до отмены ctx. Отмена
// возможна только между тиками; владелец экрана обязан отменить ctx при
// уходе с экрана, иначе таймер утечёт. Тики не сериализуются: отстающий
// запрос не блокирует следующий.
func (p *Poller) Run(ctx context.Context) {
	if p.document == "" {
		p.logger.Warn("status poller is disabled: no customer document")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	go p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.Tick(ctx)
		}
	}
}

// Tick выполняет один цикл опроса.
func (p *Poller) Tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	orders, err := p.api.ListOrders(ctx, p.from, p.to, p.document)
	if err != nil {
		// ErrorPolicySwallow: транзиентный сбой не должен останавливать цикл
		// и не должен беспокоить пользователя.
		p.logger.WithError(err).Debug("poll tick failed")
		pollTicks.WithLabelValues("error").Inc()
		return
	}

	pollLastOrders.Set(float64(len(orders)))

	var awaiting, ready int
	for _, order := range orders {
		switch order.Status {
		case domain.OrderStatusReady:
			ready++
		case domain.OrderStatusAwaiting:
			awaiting++
		}
	}

	switch {
	case ready > 0:
		p.notifier.Success(msgOrderReady)
		pollNotifications.WithLabelValues("ready").Inc()
	case awaiting > 0:
		p.notifier.Info(msgPaymentPending)
		pollNotifications.WithLabelValues("awaiting").Inc()
	}

	pollTicks.WithLabelValues("ok").Inc()
}
