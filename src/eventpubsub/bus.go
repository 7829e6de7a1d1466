package eventpubsub

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// Bus is an injectable wrapper around EventBus. Handlers receive the published event as their
// only argument, so a handler for BrokerSwitchedEventName has the signature
// func(*models.BrokerSwitchedEvent).
type Bus struct {
	bus  EventBus.Bus
	name string
}

func (b *Bus) Publish(topic models.EventName, event interface{}) {
	log.Debugf("[%v] Published to topic %s", b.name, topic)
	b.bus.Publish(string(topic), event)
}

// Subscribe registers an async handler. Publish never waits for it.
func (b *Bus) Subscribe(topic models.EventName, callbackFn interface{}) error {
	if err := b.bus.SubscribeAsync(string(topic), callbackFn, false); err != nil {
		return fmt.Errorf("Bus.Subscribe: topic %s: %w", topic, err)
	}

	log.Infof("[%v] Subscribed to topic %s", b.name, topic)
	return nil
}

// SubscribeSync registers a handler that runs inside Publish.
func (b *Bus) SubscribeSync(topic models.EventName, callbackFn interface{}) error {
	if err := b.bus.Subscribe(string(topic), callbackFn); err != nil {
		return fmt.Errorf("Bus.SubscribeSync: topic %s: %w", topic, err)
	}

	log.Infof("[%v] Subscribed (sync) to topic %s", b.name, topic)
	return nil
}

// WaitAsync blocks until every async handler has returned.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}

func NewBus(name string) *Bus {
	return &Bus{
		bus:  EventBus.New(),
		name: name,
	}
}
