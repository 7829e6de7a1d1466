package models

import (
	"time"

	"github.com/google/uuid"
)

// BrokerSwitchedEvent is published when a switch starts, before the target account is resolved.
type BrokerSwitchedEvent struct {
	EventID   uuid.UUID  `json:"eventId"`
	Broker    BrokerName `json:"broker"`
	AccountID string     `json:"accountId,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

type BrokerRefreshedEvent struct {
	EventID   uuid.UUID  `json:"eventId"`
	Broker    BrokerName `json:"broker"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewBrokerSwitchedEvent(broker BrokerName, accountID string, timestamp time.Time) *BrokerSwitchedEvent {
	return &BrokerSwitchedEvent{
		EventID:   uuid.New(),
		Broker:    broker,
		AccountID: accountID,
		Timestamp: timestamp,
	}
}

func NewBrokerRefreshedEvent(broker BrokerName, timestamp time.Time) *BrokerRefreshedEvent {
	return &BrokerRefreshedEvent{
		EventID:   uuid.New(),
		Broker:    broker,
		Timestamp: timestamp,
	}
}
