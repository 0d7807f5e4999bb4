package memory

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// Router — headless-замена клиентского роутера: хранит текущий и последний
// посещённый маршруты, на которые опирается гард оформления.
type Router struct {
	mu       sync.RWMutex
	current  string
	lastPath string
	logger   *log.Entry
}

// NewRouter создаёт роутер, стоящий на корне каталога.
func NewRouter(logger *log.Entry) *Router {
	if logger == nil {
		logger = log.WithField("component", "router")
	}
	return &Router{
		current: domain.RouteCatalog,
		logger:  logger,
	}
}

// NavigateTo переходит на маршрут, запоминая предыдущий как последний посещённый.
func (r *Router) NavigateTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == r.current {
		return
	}
	r.lastPath = r.current
	r.current = path
	r.logger.WithFields(log.Fields{
		"path": path,
		"from": r.lastPath,
	}).Debug("navigated")
}

// Current возвращает текущий маршрут.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// LastPath возвращает последний посещённый маршрут.
func (r *Router) LastPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastPath
}

var _ domain.Router = (*Router)(nil)
