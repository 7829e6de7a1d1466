package models

// EventFrame is the websocket envelope for bus events and notifications.
type EventFrame struct {
	Type    EventName   `json:"type"`
	Payload interface{} `json:"payload"`
}
