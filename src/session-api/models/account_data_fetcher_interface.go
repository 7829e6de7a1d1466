package models

import "context"

type IAccountDataFetcher interface {
	ActivateAccount(ctx context.Context, account BrokerAccount) error
	RefreshAccount(ctx context.Context, account BrokerAccount) error
}
