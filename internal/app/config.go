package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config — настройки headless-клиента, читаются из окружения.
type Config struct {
	// APIBaseURL — базовый адрес management API.
	APIBaseURL string `envconfig:"GESTAO_API_URL" default:"https://sistema-pedidos-gestao-api.onrender.com"`
	// OpsAddr — адрес HTTP-сервера метрик и health-проверок.
	OpsAddr string `envconfig:"OPS_ADDR" default:":9090"`
	// PollInterval — период фонового опроса статусов заказов.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"10s"`

	// Данные аутентифицированного клиента сессии.
	CustomerName  string `envconfig:"CUSTOMER_NAME"`
	CustomerCPF   string `envconfig:"CUSTOMER_CPF"`
	CustomerPhone string `envconfig:"CUSTOMER_PHONE"`
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
