package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// AddBrokerAccount replaces an account with the same key in place, or appends it. The first
// account added to an empty session becomes active.
func (s *BrokerSession) AddBrokerAccount(ctx context.Context, account models.BrokerAccount) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("BrokerSession.AddBrokerAccount: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	wasEmpty := len(s.accounts) == 0
	replaced := s.upsertLocked(cloneAccount(account))

	var errs error
	if err := s.persistAccountsLocked(ctx); err != nil {
		errs = errors.Join(errs, err)
	}

	if wasEmpty {
		key := account.Key()
		if err := s.setActiveLocked(ctx, &key); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if replaced {
		log.Infof("BrokerSession: updated broker account %v", account)
	} else {
		log.Infof("BrokerSession: added broker account %v", account)
	}

	if errs != nil {
		return fmt.Errorf("BrokerSession.AddBrokerAccount: %w", errs)
	}

	return nil
}

// RemoveBrokerAccount reports whether an account was removed. Removing an unknown account is
// not an error. When the active account is removed the first remaining account takes over.
func (s *BrokerSession) RemoveBrokerAccount(ctx context.Context, broker models.BrokerName, accountID string) (bool, error) {
	key := models.NewAccountKey(broker, accountID)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOfLocked(key)
	if idx < 0 {
		log.Debugf("BrokerSession: remove ignored, %v is not connected", key)
		return false, nil
	}

	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)

	var errs error
	if err := s.persistAccountsLocked(ctx); err != nil {
		errs = errors.Join(errs, err)
	}

	if s.activeKey != nil && *s.activeKey == key {
		var next *models.AccountKey
		if len(s.accounts) > 0 {
			k := s.accounts[0].Key()
			next = &k
		}

		if err := s.setActiveLocked(ctx, next); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	log.Infof("BrokerSession: removed broker account %v", key)

	if errs != nil {
		return true, fmt.Errorf("BrokerSession.RemoveBrokerAccount: %w", errs)
	}

	return true, nil
}

func (s *BrokerSession) upsertLocked(account models.BrokerAccount) bool {
	if idx := s.indexOfLocked(account.Key()); idx >= 0 {
		s.accounts[idx] = account
		return true
	}

	s.accounts = append(s.accounts, account)
	return false
}

func (s *BrokerSession) indexOfLocked(key models.AccountKey) int {
	for i, account := range s.accounts {
		if account.Key() == key {
			return i
		}
	}

	return -1
}

// indexOfMatchLocked returns the first account of broker, restricted to accountID when given.
func (s *BrokerSession) indexOfMatchLocked(broker models.BrokerName, accountID string) int {
	for i, account := range s.accounts {
		if account.Key().Matches(broker, accountID) {
			return i
		}
	}

	return -1
}

func cloneAccount(account models.BrokerAccount) models.BrokerAccount {
	if account.LastSync != nil {
		ts := *account.LastSync
		account.LastSync = &ts
	}

	return account
}

func cloneAccounts(accounts []models.BrokerAccount) []models.BrokerAccount {
	out := make([]models.BrokerAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, cloneAccount(account))
	}

	return out
}
