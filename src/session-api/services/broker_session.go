package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

const (
	ConnectedAccountsKey = "connectedBrokerAccounts"
	ActiveBrokerKey      = "activeBroker"

	instrumentationName = "github.com/jiaming2012/broker-session/src/session-api/services"
)

// BrokerSession owns the connected broker accounts and the active selection. The active
// selection is held as a key into accounts, so the active account always reflects the
// matching collection entry.
//
// The mutex only protects memory. Switch and refresh calls are not serialized against each
// other: the last writer wins on isSyncing and on the active selection.
type BrokerSession struct {
	mutex     sync.RWMutex
	accounts  []models.BrokerAccount
	activeKey *models.AccountKey
	isLoading bool
	isSyncing bool

	store     models.IKeyValueStore
	fetcher   models.IAccountDataFetcher
	publisher models.IEventPublisher
	notifier  models.INotifier
	now       func() time.Time

	switchStats  *SyncStats
	refreshStats *SyncStats
	tracer       trace.Tracer
	metrics      *sessionMetrics
}

func (s *BrokerSession) SetClock(now func() time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.now = now
}

func (s *BrokerSession) ActiveBroker() *models.BrokerName {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.activeBrokerLocked()
}

func (s *BrokerSession) ActiveAccount() *models.BrokerAccount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	account, found := s.activeAccountLocked()
	if !found {
		return nil
	}

	return &account
}

func (s *BrokerSession) ConnectedAccounts() []models.BrokerAccount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return cloneAccounts(s.accounts)
}

func (s *BrokerSession) IsLoading() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.isLoading
}

func (s *BrokerSession) IsSyncing() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.isSyncing
}

func (s *BrokerSession) Snapshot() models.SessionState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state := models.SessionState{
		ActiveBroker:      s.activeBrokerLocked(),
		ConnectedAccounts: cloneAccounts(s.accounts),
		IsLoading:         s.isLoading,
		IsSyncing:         s.isSyncing,
	}

	if account, found := s.activeAccountLocked(); found {
		state.ActiveAccount = &account
	}

	return state
}

func (s *BrokerSession) Status() models.SessionStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	status := models.SessionStatus{
		IsLoading:    s.isLoading,
		IsSyncing:    s.isSyncing,
		Accounts:     len(s.accounts),
		SwitchStats:  s.switchStats.Summary(),
		RefreshStats: s.refreshStats.Summary(),
	}

	if s.activeKey != nil {
		key := *s.activeKey
		status.ActiveAccount = &key
	}

	return status
}

// Load restores the persisted session. Failures are logged and leave an empty session; the
// loading flag is cleared either way.
func (s *BrokerSession) Load(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	defer func() {
		s.isLoading = false
	}()

	s.accounts = nil
	s.activeKey = nil

	accounts, persistedBroker, err := s.readPersisted(ctx)
	if err != nil {
		log.Errorf("BrokerSession.Load: failed to load persisted session: %v", err)
		return
	}

	for _, account := range accounts {
		if err := account.Validate(); err != nil {
			log.Warnf("BrokerSession.Load: skipping persisted account %v: %v", account.Key(), err)
			continue
		}

		s.upsertLocked(cloneAccount(account))
	}

	if len(s.accounts) == 0 {
		log.Info("BrokerSession.Load: no connected broker accounts")
		return
	}

	active := s.accounts[0].Key()
	if persistedBroker != nil {
		if idx := s.indexOfMatchLocked(*persistedBroker, ""); idx >= 0 {
			active = s.accounts[idx].Key()
		}
	}

	s.activeKey = &active

	if persistedBroker == nil || *persistedBroker != active.Broker {
		if err := s.persistActiveBrokerLocked(ctx, active.Broker); err != nil {
			log.Warnf("BrokerSession.Load: %v", err)
		}
	}

	log.Infof("BrokerSession.Load: loaded %d broker account(s), active %v", len(s.accounts), active)
}

func (s *BrokerSession) readPersisted(ctx context.Context) ([]models.BrokerAccount, *models.BrokerName, error) {
	var accounts []models.BrokerAccount

	raw, found, err := s.store.Get(ctx, ConnectedAccountsKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", ConnectedAccountsKey, err)
	}

	if found && raw != "" {
		if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", ConnectedAccountsKey, err)
		}
	}

	rawBroker, found, err := s.store.Get(ctx, ActiveBrokerKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", ActiveBrokerKey, err)
	}

	if !found || rawBroker == "" {
		return accounts, nil, nil
	}

	broker := models.BrokerName(rawBroker)
	if err := broker.Validate(); err != nil {
		log.Warnf("BrokerSession.Load: ignoring persisted active broker: %v", err)
		return accounts, nil, nil
	}

	return accounts, &broker, nil
}

// persistAccountsLocked writes the full collection. An empty collection is never written.
func (s *BrokerSession) persistAccountsLocked(ctx context.Context) error {
	if len(s.accounts) == 0 {
		return nil
	}

	data, err := json.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("BrokerSession.persistAccounts: failed to encode accounts: %w", err)
	}

	if err := s.store.Set(ctx, ConnectedAccountsKey, string(data)); err != nil {
		return fmt.Errorf("BrokerSession.persistAccounts: %w", err)
	}

	return nil
}

func (s *BrokerSession) persistActiveBrokerLocked(ctx context.Context, broker models.BrokerName) error {
	if err := s.store.Set(ctx, ActiveBrokerKey, string(broker)); err != nil {
		return fmt.Errorf("BrokerSession.persistActiveBroker: %w", err)
	}

	return nil
}

// setActiveLocked moves the active selection and persists the broker when it changed.
func (s *BrokerSession) setActiveLocked(ctx context.Context, key *models.AccountKey) error {
	previous := s.activeBrokerLocked()
	s.activeKey = key

	if key == nil {
		return nil
	}

	if previous != nil && *previous == key.Broker {
		return nil
	}

	return s.persistActiveBrokerLocked(ctx, key.Broker)
}

func (s *BrokerSession) activeBrokerLocked() *models.BrokerName {
	if s.activeKey == nil {
		return nil
	}

	broker := s.activeKey.Broker
	return &broker
}

func (s *BrokerSession) activeAccountLocked() (models.BrokerAccount, bool) {
	if s.activeKey == nil {
		return models.BrokerAccount{}, false
	}

	idx := s.indexOfLocked(*s.activeKey)
	if idx < 0 {
		return models.BrokerAccount{}, false
	}

	return cloneAccount(s.accounts[idx]), true
}

func NewBrokerSession(store models.IKeyValueStore, fetcher models.IAccountDataFetcher, publisher models.IEventPublisher, notifier models.INotifier) (*BrokerSession, error) {
	if store == nil {
		return nil, fmt.Errorf("NewBrokerSession: %w", models.ErrNilKeyValueStore)
	}

	if fetcher == nil {
		return nil, fmt.Errorf("NewBrokerSession: %w", models.ErrNilAccountFetcher)
	}

	if publisher == nil {
		publisher = noopPublisher{}
	}

	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &BrokerSession{
		isLoading:    true,
		store:        store,
		fetcher:      fetcher,
		publisher:    publisher,
		notifier:     notifier,
		now:          time.Now,
		switchStats:  NewSyncStats(),
		refreshStats: NewSyncStats(),
		tracer:       otel.Tracer(instrumentationName),
		metrics:      newSessionMetrics(),
	}, nil
}
