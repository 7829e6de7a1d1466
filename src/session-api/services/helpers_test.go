package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.now = c.now.Add(d)
}

type sessionFixture struct {
	session   *BrokerSession
	store     *models.MockKeyValueStore
	fetcher   *models.MockAccountDataFetcher
	publisher *models.MockEventPublisher
	notifier  *models.MockNotifier
	clock     *fakeClock
}

func newSessionFixture(t *testing.T, store *models.MockKeyValueStore) *sessionFixture {
	if store == nil {
		store = models.NewMockKeyValueStore()
	}

	f := &sessionFixture{
		store:     store,
		fetcher:   models.NewMockAccountDataFetcher(),
		publisher: models.NewMockEventPublisher(),
		notifier:  models.NewMockNotifier(),
		clock:     &fakeClock{now: time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC)},
	}

	session, err := NewBrokerSession(f.store, f.fetcher, f.publisher, f.notifier)
	require.NoError(t, err)

	session.SetClock(f.clock.Now)
	session.Load(context.Background())
	f.session = session

	return f
}

func (f *sessionFixture) add(t *testing.T, broker models.BrokerName, accountID, accountName string) models.BrokerAccount {
	account := models.NewBrokerAccount(broker, accountID, accountName, true)
	require.NoError(t, f.session.AddBrokerAccount(context.Background(), account))
	return account
}

func keysOf(accounts []models.BrokerAccount) []models.AccountKey {
	var keys []models.AccountKey
	for _, account := range accounts {
		keys = append(keys, account.Key())
	}

	return keys
}
