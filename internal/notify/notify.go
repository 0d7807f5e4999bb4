// Package notify — глобальный sink всплывающих уведомлений. В headless-режиме
// уведомления уходят в журнал; встраивающий UI подменяет реализацию.
package notify

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos-client/internal/domain"
)

// Kind — тип уведомления.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification — одно уведомление с идентификатором для дедупликации в UI.
type Notification struct {
	ID      string
	Kind    Kind
	Message string
	At      time.Time
}

// New собирает уведомление с новым идентификатором.
func New(kind Kind, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}
}

// LogNotifier пишет уведомления в структурированный журнал.
type LogNotifier struct {
	logger *log.Entry
}

// NewLogNotifier создаёт notifier поверх журнала.
func NewLogNotifier(logger *log.Entry) *LogNotifier {
	if logger == nil {
		logger = log.WithField("component", "notifier")
	}
	return &LogNotifier{logger: logger}
}

// Success публикует уведомление об успехе.
func (n *LogNotifier) Success(message string) { n.emit(KindSuccess, message) }

// Error публикует уведомление об ошибке.
func (n *LogNotifier) Error(message string) { n.emit(KindError, message) }

// Info публикует информационное уведомление.
func (n *LogNotifier) Info(message string) { n.emit(KindInfo, message) }

func (n *LogNotifier) emit(kind Kind, message string) {
	note := New(kind, message)
	entry := n.logger.WithFields(log.Fields{
		"notification_id": note.ID,
		"kind":            string(note.Kind),
	})
	switch kind {
	case KindError:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

var _ domain.Notifier = (*LogNotifier)(nil)
