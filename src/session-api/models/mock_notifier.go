package models

import "sync"

type MockNotifier struct {
	mutex         sync.Mutex
	notifications []*Notification
}

func (m *MockNotifier) Notify(notification *Notification) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.notifications = append(m.notifications, notification)
}

func (m *MockNotifier) Notifications() []*Notification {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]*Notification(nil), m.notifications...)
}

func (m *MockNotifier) Last() *Notification {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.notifications) == 0 {
		return nil
	}

	return m.notifications[len(m.notifications)-1]
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}
