package services

import (
	"context"
	"time"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// SimulatedAccountFetcher stands in for a broker backend by waiting a fixed latency.
type SimulatedAccountFetcher struct {
	switchLatency  time.Duration
	refreshLatency time.Duration
}

func (f *SimulatedAccountFetcher) ActivateAccount(ctx context.Context, account models.BrokerAccount) error {
	return wait(ctx, f.switchLatency)
}

func (f *SimulatedAccountFetcher) RefreshAccount(ctx context.Context, account models.BrokerAccount) error {
	return wait(ctx, f.refreshLatency)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func NewSimulatedAccountFetcher(switchLatency, refreshLatency time.Duration) *SimulatedAccountFetcher {
	return &SimulatedAccountFetcher{
		switchLatency:  switchLatency,
		refreshLatency: refreshLatency,
	}
}
