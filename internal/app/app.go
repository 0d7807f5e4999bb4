// Package app собирает клиент целиком: API-клиент, состояние сессии,
// сервисы витрины/оформления/истории, фоновый опрос и ops-сервер.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
	"github.com/vladislavdragonenkov/pedidos-client/internal/gestao"
	healthcheck "github.com/vladislavdragonenkov/pedidos-client/internal/health"
	"github.com/vladislavdragonenkov/pedidos-client/internal/mask"
	"github.com/vladislavdragonenkov/pedidos-client/internal/notify"
	"github.com/vladislavdragonenkov/pedidos-client/internal/service/catalog"
	"github.com/vladislavdragonenkov/pedidos-client/internal/service/checkout"
	"github.com/vladislavdragonenkov/pedidos-client/internal/service/history"
	"github.com/vladislavdragonenkov/pedidos-client/internal/storage/memory"
	"github.com/vladislavdragonenkov/pedidos-client/internal/version"
)

// Client — собранный headless-клиент. Поля открыты для встраивающего UI.
type Client struct {
	API      *gestao.Client
	Cart     *memory.CartStore
	Session  *memory.SessionStore
	Router   *memory.Router
	Catalog  *catalog.Catalog
	Checkout *checkout.Checkout
	History  *history.History
	Poller   *history.Poller
}

// Build собирает клиент по конфигурации без запуска фоновых задач.
func Build(cfg Config, notifier domain.Notifier, logger *log.Entry) *Client {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger.WithField("component", "notifier"))
	}

	api := gestao.NewClient(cfg.APIBaseURL, gestao.WithLogger(logger.WithField("component", "gestao-client")))
	cart := memory.NewCartStore()
	session := memory.NewSessionStore()
	router := memory.NewRouter(logger.WithField("component", "router"))

	if cfg.CustomerCPF != "" || cfg.CustomerName != "" {
		session.SetCustomer(domain.Customer{
			Name:     cfg.CustomerName,
			Document: mask.Digits(cfg.CustomerCPF),
			Phone:    mask.Digits(cfg.CustomerPhone),
		})
	}

	document := mask.Digits(cfg.CustomerCPF)

	return &Client{
		API:      api,
		Cart:     cart,
		Session:  session,
		Router:   router,
		Catalog:  catalog.NewCatalog(api, cart, notifier, logger.WithField("component", "catalog")),
		Checkout: checkout.NewCheckout(api, cart, session, router, notifier, logger.WithField("component", "checkout")),
		History:  history.NewHistory(api, notifier, logger.WithField("component", "history")),
		Poller: history.NewPoller(api, notifier, document,
			history.WithInterval(cfg.PollInterval),
			history.WithLogger(logger.WithField("component", "status-poller")),
		),
	}
}

// Run запускает клиент: первичная загрузка витрины, фоновый опрос статусов и
// ops-сервер. Блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	client := Build(cfg, nil, logger)

	// Витрина грузится best-effort: API может быть недоступен на старте.
	if err := client.Catalog.Refresh(ctx); err != nil {
		logger.WithError(err).Warn("initial catalog refresh failed")
	}

	healthHandler := healthcheck.NewHandler(version.String())
	healthHandler.RegisterChecker("gestao-api", healthcheck.NewAPIChecker("gestao-api", cfg.APIBaseURL, nil, 5*time.Second))

	opsSrv := startOpsServer(cfg.OpsAddr, logger, healthHandler)

	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		client.Poller.Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем клиент")

	// Опрос отменяется между тиками; дожидаемся выхода цикла.
	select {
	case <-pollerDone:
	case <-time.After(5 * time.Second):
		logger.Warn("status poller не остановился за таймаут")
	}
	shutdownHTTP(opsSrv, logger)

	return ctx.Err()
}

// startOpsServer поднимает HTTP-обработчики /metrics, /healthz и /livez.
func startOpsServer(addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
