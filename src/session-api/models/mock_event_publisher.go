package models

import "sync"

type PublishedEvent struct {
	Topic EventName
	Event interface{}
}

type MockEventPublisher struct {
	mutex  sync.Mutex
	events []PublishedEvent
}

func (m *MockEventPublisher) Publish(topic EventName, event interface{}) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = append(m.events, PublishedEvent{Topic: topic, Event: event})
}

func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]PublishedEvent(nil), m.events...)
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}
