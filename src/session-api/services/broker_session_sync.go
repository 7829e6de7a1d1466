package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// SwitchBroker makes the first account of broker (and accountID, when non-empty) active. The
// switched event is published before the lookup so listeners can show a sync indicator right
// away. An unknown account returns ErrBrokerAccountNotFound and leaves the session unchanged.
func (s *BrokerSession) SwitchBroker(ctx context.Context, broker models.BrokerName, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "BrokerSession.SwitchBroker")
	defer span.End()

	span.SetAttributes(attribute.String("broker", string(broker)), attribute.String("account_id", accountID))

	s.setSyncing(true)
	defer s.setSyncing(false)

	s.publisher.Publish(models.BrokerSwitchedEventName, models.NewBrokerSwitchedEvent(broker, accountID, s.clock()))

	account, err := s.activateMatching(ctx, broker, accountID)
	if err != nil {
		s.fail(ctx, span, operationSwitch, broker, "Broker switch failed", err)
		return err
	}

	start := time.Now()
	if err := s.fetcher.ActivateAccount(ctx, account); err != nil {
		err = fmt.Errorf("BrokerSession.SwitchBroker: failed to activate %v: %w", account.Key(), err)
		s.fail(ctx, span, operationSwitch, broker, "Broker switch failed", err)
		return err
	}

	s.switchStats.Record(time.Since(start))
	s.metrics.record(ctx, operationSwitch, broker, outcomeSuccess)

	msg := fmt.Sprintf("Switched to %s", account)
	log.WithContext(ctx).Info(msg)
	s.notifier.Notify(models.NewNotification(models.NotificationLevelSuccess, "Broker switched", msg, s.clock()))

	return nil
}

// RefreshBrokerData re-syncs the active account and stamps its lastSync. It does nothing when
// no account is active.
func (s *BrokerSession) RefreshBrokerData(ctx context.Context) error {
	s.mutex.RLock()
	account, found := s.activeAccountLocked()
	s.mutex.RUnlock()

	if !found {
		log.Debug("BrokerSession.RefreshBrokerData: no active broker, skipping")
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "BrokerSession.RefreshBrokerData")
	defer span.End()

	span.SetAttributes(attribute.String("broker", string(account.Broker)), attribute.String("account_id", account.AccountID))

	s.setSyncing(true)
	defer s.setSyncing(false)

	s.publisher.Publish(models.BrokerRefreshedEventName, models.NewBrokerRefreshedEvent(account.Broker, s.clock()))

	start := time.Now()
	if err := s.fetcher.RefreshAccount(ctx, account); err != nil {
		err = fmt.Errorf("BrokerSession.RefreshBrokerData: failed to refresh %v: %w", account.Key(), err)
		s.fail(ctx, span, operationRefresh, account.Broker, "Refresh failed", err)
		return err
	}

	s.refreshStats.Record(time.Since(start))

	if err := s.markSynced(ctx, account.Key(), s.clock()); err != nil {
		s.fail(ctx, span, operationRefresh, account.Broker, "Refresh failed", err)
		return err
	}

	s.metrics.record(ctx, operationRefresh, account.Broker, outcomeSuccess)

	msg := fmt.Sprintf("Refreshed %s", account)
	log.WithContext(ctx).Info(msg)
	s.notifier.Notify(models.NewNotification(models.NotificationLevelSuccess, "Broker data refreshed", msg, s.clock()))

	return nil
}

func (s *BrokerSession) activateMatching(ctx context.Context, broker models.BrokerName, accountID string) (models.BrokerAccount, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOfMatchLocked(broker, accountID)
	if idx < 0 {
		target := string(broker)
		if accountID != "" {
			target = models.NewAccountKey(broker, accountID).String()
		}

		return models.BrokerAccount{}, fmt.Errorf("BrokerSession.SwitchBroker: %w: %s", models.ErrBrokerAccountNotFound, target)
	}

	account := cloneAccount(s.accounts[idx])
	key := account.Key()
	if err := s.setActiveLocked(ctx, &key); err != nil {
		log.Warnf("BrokerSession.SwitchBroker: %v", err)
	}

	return account, nil
}

// markSynced stamps lastSync on the entry with key and persists the collection. The entry may
// have been removed while the refresh was in flight.
func (s *BrokerSession) markSynced(ctx context.Context, key models.AccountKey, syncedAt time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOfLocked(key)
	if idx < 0 {
		return fmt.Errorf("BrokerSession.RefreshBrokerData: %w: %s", models.ErrBrokerAccountNotFound, key)
	}

	s.accounts[idx].LastSync = &syncedAt

	if err := s.persistAccountsLocked(ctx); err != nil {
		log.Warnf("BrokerSession.RefreshBrokerData: %v", err)
	}

	return nil
}

func (s *BrokerSession) fail(ctx context.Context, span trace.Span, operation string, broker models.BrokerName, title string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.metrics.record(ctx, operation, broker, outcomeError)

	log.WithContext(ctx).Errorf("%s: %v", title, err)
	s.notifier.Notify(models.NewNotification(models.NotificationLevelError, title, err.Error(), s.clock()))
}

func (s *BrokerSession) setSyncing(syncing bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.isSyncing = syncing
}

func (s *BrokerSession) clock() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.now()
}
