package models

import "time"

type BrokerAccountCSV struct {
	Broker      string `csv:"broker"`
	AccountID   string `csv:"account_id"`
	AccountName string `csv:"account_name"`
	Connected   bool   `csv:"connected"`
	LastSync    string `csv:"last_sync"`
	Active      bool   `csv:"active"`
}

func NewBrokerAccountCSV(account BrokerAccount, active bool) *BrokerAccountCSV {
	row := &BrokerAccountCSV{
		Broker:      string(account.Broker),
		AccountID:   account.AccountID,
		AccountName: account.AccountName,
		Connected:   account.Connected,
		Active:      active,
	}

	if account.LastSync != nil {
		row.LastSync = account.LastSync.UTC().Format(time.RFC3339)
	}

	return row
}
