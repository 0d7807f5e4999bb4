package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/app"
)

// setupLogger настраивает формат и уровень логирования клиента.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func main() {
	setupLogger()

	// .env опционален: в контейнере конфигурация приходит из окружения.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("не удалось прочитать .env")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"api_base_url":  cfg.APIBaseURL,
		"ops_addr":      cfg.OpsAddr,
		"poll_interval": cfg.PollInterval,
	}).Info("запускаем клиент заказов")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("клиент завершился с ошибкой")
	}

	log.Info("клиент заказов остановлен")
}
