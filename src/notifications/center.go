package notifications

import (
	events "github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const notificationEvent = events.EventName(models.NotificationEventName)

// Center fans user-facing notifications out to listeners. Listeners run synchronously inside
// Notify, in registration order.
type Center struct {
	emitter events.EventEmmiter
}

func (c *Center) Notify(notification *models.Notification) {
	if notification == nil {
		return
	}

	entry := log.WithFields(log.Fields{
		"notification_id": notification.ID,
		"title":           notification.Title,
	})

	switch notification.Level {
	case models.NotificationLevelError:
		entry.Warn(notification.Message)
	default:
		entry.Info(notification.Message)
	}

	c.emitter.Emit(notificationEvent, notification)
}

func (c *Center) OnNotification(fn func(*models.Notification)) {
	listener := func(payload ...interface{}) {
		if len(payload) == 0 {
			return
		}

		if notification, ok := payload[0].(*models.Notification); ok {
			fn(notification)
		}
	}

	c.emitter.On(notificationEvent, listener)
}

func (c *Center) ListenerCount() int {
	return c.emitter.ListenerCount(notificationEvent)
}

func NewCenter() *Center {
	return &Center{
		emitter: events.New(),
	}
}
