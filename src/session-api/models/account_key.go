package models

import "fmt"

// AccountKey identifies an account: account ids are only unique within a broker.
type AccountKey struct {
	Broker    BrokerName `json:"broker"`
	AccountID string     `json:"accountId"`
}

func (k AccountKey) String() string {
	return fmt.Sprintf("%s/%s", k.Broker, k.AccountID)
}

// Matches reports whether the account belongs to broker and, when accountID is non-empty, has that id.
func (k AccountKey) Matches(broker BrokerName, accountID string) bool {
	if k.Broker != broker {
		return false
	}

	return accountID == "" || k.AccountID == accountID
}

func NewAccountKey(broker BrokerName, accountID string) AccountKey {
	return AccountKey{
		Broker:    broker,
		AccountID: accountID,
	}
}
