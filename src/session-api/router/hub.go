package router

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/eventpubsub"
	"github.com/jiaming2012/broker-session/src/notifications"
	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const (
	clientBufferSize = 32
	writeWait        = 10 * time.Second
	maxMessageSize   = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn *websocket.Conn
	send chan models.EventFrame
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(frame); err != nil {
			log.Debugf("EventHub: write failed: %v", err)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// EventHub forwards session events and notifications to every connected websocket client. It
// subscribes to its sources once; clients come and go without touching the bus.
type EventHub struct {
	mutex   sync.Mutex
	clients map[*wsClient]struct{}
}

// Attach subscribes the hub to the session topics on bus and to notifications on center.
func (h *EventHub) Attach(bus *eventpubsub.Bus, center *notifications.Center) error {
	if bus != nil {
		if err := bus.Subscribe(models.BrokerSwitchedEventName, func(event *models.BrokerSwitchedEvent) {
			h.Broadcast(models.EventFrame{Type: models.BrokerSwitchedEventName, Payload: event})
		}); err != nil {
			return fmt.Errorf("EventHub.Attach: %w", err)
		}

		if err := bus.Subscribe(models.BrokerRefreshedEventName, func(event *models.BrokerRefreshedEvent) {
			h.Broadcast(models.EventFrame{Type: models.BrokerRefreshedEventName, Payload: event})
		}); err != nil {
			return fmt.Errorf("EventHub.Attach: %w", err)
		}
	}

	if center != nil {
		center.OnNotification(func(notification *models.Notification) {
			h.Broadcast(models.EventFrame{Type: models.NotificationEventName, Payload: notification})
		})
	}

	return nil
}

// Broadcast never blocks. Frames for a client whose buffer is full are dropped.
func (h *EventHub) Broadcast(frame models.EventFrame) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.send <- frame:
		default:
			log.Warnf("EventHub: dropping %s frame for slow client %v", frame.Type, client.conn.RemoteAddr())
		}
	}
}

func (h *EventHub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return len(h.clients)
}

func (h *EventHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("EventHub.ServeWS: upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan models.EventFrame, clientBufferSize),
	}

	h.register(client)
	go client.writePump()

	// clients only listen; reading detects the disconnect
	conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(client)
}

// Close disconnects every client.
func (h *EventHub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *EventHub) register(client *wsClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = struct{}{}
	log.Debugf("EventHub: client %v connected", client.conn.RemoteAddr())
}

func (h *EventHub) unregister(client *wsClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, found := h.clients[client]; !found {
		return
	}

	delete(h.clients, client)
	close(client.send)
	log.Debugf("EventHub: client %v disconnected", client.conn.RemoteAddr())
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[*wsClient]struct{}),
	}
}
