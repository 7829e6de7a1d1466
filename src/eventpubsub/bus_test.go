package eventpubsub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

func TestBus(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC)

	t.Run("async subscriber receives the event", func(t *testing.T) {
		bus := NewBus("test")

		var mutex sync.Mutex
		var received []*models.BrokerSwitchedEvent
		err := bus.Subscribe(models.BrokerSwitchedEventName, func(ev *models.BrokerSwitchedEvent) {
			mutex.Lock()
			defer mutex.Unlock()
			received = append(received, ev)
		})
		require.NoError(t, err)

		event := models.NewBrokerSwitchedEvent(models.BrokerTopstep, "B1", ts)
		bus.Publish(models.BrokerSwitchedEventName, event)
		bus.WaitAsync()

		mutex.Lock()
		defer mutex.Unlock()
		require.Len(t, received, 1)
		require.Equal(t, event, received[0])
	})

	t.Run("sync subscriber runs before publish returns", func(t *testing.T) {
		bus := NewBus("test")

		var received *models.BrokerRefreshedEvent
		err := bus.SubscribeSync(models.BrokerRefreshedEventName, func(ev *models.BrokerRefreshedEvent) {
			received = ev
		})
		require.NoError(t, err)

		event := models.NewBrokerRefreshedEvent(models.BrokerTradeLocker, ts)
		bus.Publish(models.BrokerRefreshedEventName, event)
		require.Equal(t, event, received)
	})

	t.Run("publishing without subscribers is a no-op", func(t *testing.T) {
		bus := NewBus("test")
		bus.Publish(models.BrokerRefreshedEventName, models.NewBrokerRefreshedEvent(models.BrokerTradeLocker, ts))
	})

	t.Run("non-func handler is rejected", func(t *testing.T) {
		bus := NewBus("test")
		require.Error(t, bus.Subscribe(models.BrokerSwitchedEventName, "not a func"))
	})
}
