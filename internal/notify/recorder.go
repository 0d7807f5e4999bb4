package notify

import (
	"sync"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// Recorder накапливает уведомления в памяти; используется в тестах для
// проверок «ровно одно уведомление и именно такое».
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// NewRecorder возвращает пустой recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success записывает уведомление об успехе.
func (r *Recorder) Success(message string) { r.record(KindSuccess, message) }

// Error записывает уведомление об ошибке.
func (r *Recorder) Error(message string) { r.record(KindError, message) }

// Info записывает информационное уведомление.
func (r *Recorder) Info(message string) { r.record(KindInfo, message) }

func (r *Recorder) record(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, New(kind, message))
}

// All возвращает копию накопленных уведомлений.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// OfKind возвращает уведомления заданного типа.
func (r *Recorder) OfKind(kind Kind) []Notification {
	var out []Notification
	for _, n := range r.All() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Reset очищает накопленное.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

var _ domain.Notifier = (*Recorder)(nil)
