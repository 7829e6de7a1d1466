package models

import (
	"context"
	"sync"
)

type MockAccountDataFetcher struct {
	mutex       sync.Mutex
	ActivateErr error
	RefreshErr  error
	OnActivate  func(account BrokerAccount)
	OnRefresh   func(account BrokerAccount)
	activated   []BrokerAccount
	refreshed   []BrokerAccount
}

func (m *MockAccountDataFetcher) ActivateAccount(ctx context.Context, account BrokerAccount) error {
	m.mutex.Lock()
	m.activated = append(m.activated, account)
	hook, err := m.OnActivate, m.ActivateErr
	m.mutex.Unlock()

	if hook != nil {
		hook(account)
	}

	return err
}

func (m *MockAccountDataFetcher) RefreshAccount(ctx context.Context, account BrokerAccount) error {
	m.mutex.Lock()
	m.refreshed = append(m.refreshed, account)
	hook, err := m.OnRefresh, m.RefreshErr
	m.mutex.Unlock()

	if hook != nil {
		hook(account)
	}

	return err
}

func (m *MockAccountDataFetcher) Activated() []BrokerAccount {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]BrokerAccount(nil), m.activated...)
}

func (m *MockAccountDataFetcher) Refreshed() []BrokerAccount {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]BrokerAccount(nil), m.refreshed...)
}

func NewMockAccountDataFetcher() *MockAccountDataFetcher {
	return &MockAccountDataFetcher{}
}
