package models

import "fmt"

var (
	ErrBrokerAccountNotFound = fmt.Errorf("broker account not found")
	ErrInvalidBroker         = fmt.Errorf("unsupported broker")
	ErrMissingAccountID      = fmt.Errorf("account id is required")
	ErrNilKeyValueStore      = fmt.Errorf("key value store is nil")
	ErrNilAccountFetcher     = fmt.Errorf("account data fetcher is nil")
)
