package models

import (
	"fmt"
	"strings"
	"time"
)

type BrokerAccount struct {
	Broker      BrokerName `json:"broker"`
	AccountID   string     `json:"accountId"`
	AccountName string     `json:"accountName"`
	Connected   bool       `json:"connected"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
}

func (a BrokerAccount) Key() AccountKey {
	return NewAccountKey(a.Broker, a.AccountID)
}

func (a BrokerAccount) Validate() error {
	if err := a.Broker.Validate(); err != nil {
		return fmt.Errorf("BrokerAccount.Validate: %w", err)
	}

	if strings.TrimSpace(a.AccountID) == "" {
		return fmt.Errorf("BrokerAccount.Validate: %w", ErrMissingAccountID)
	}

	return nil
}

func (a BrokerAccount) String() string {
	if a.AccountName == "" {
		return a.Key().String()
	}

	return fmt.Sprintf("%s (%s)", a.AccountName, a.Key())
}

func NewBrokerAccount(broker BrokerName, accountID, accountName string, connected bool) BrokerAccount {
	return BrokerAccount{
		Broker:      broker,
		AccountID:   accountID,
		AccountName: accountName,
		Connected:   connected,
	}
}
