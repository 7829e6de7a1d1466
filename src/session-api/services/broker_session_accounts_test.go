package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

func TestAddBrokerAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("first account becomes active", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		a1 := f.add(t, models.BrokerTradeLocker, "A1", "Main")

		require.NotNil(t, f.session.ActiveAccount())
		assert.Equal(t, a1, *f.session.ActiveAccount())
		assert.Equal(t, models.BrokerTradeLocker, *f.session.ActiveBroker())
	})

	t.Run("later accounts do not change the active account", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		a1 := f.add(t, models.BrokerTradeLocker, "A1", "Main")
		f.add(t, models.BrokerTopstep, "B1", "Combine")

		assert.Equal(t, a1.Key(), f.session.ActiveAccount().Key())
		assert.Len(t, f.session.ConnectedAccounts(), 2)
	})

	t.Run("same key replaces in place", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		f.add(t, models.BrokerTradeLocker, "A1", "Main")
		f.add(t, models.BrokerTopstep, "B1", "Combine")

		updated := models.NewBrokerAccount(models.BrokerTradeLocker, "A1", "Renamed", false)
		require.NoError(t, f.session.AddBrokerAccount(ctx, updated))

		accounts := f.session.ConnectedAccounts()
		require.Len(t, accounts, 2)
		assert.Equal(t, updated, accounts[0])
		assert.Equal(t, "Renamed", f.session.ActiveAccount().AccountName)
	})

	t.Run("invalid account is rejected", func(t *testing.T) {
		f := newSessionFixture(t, nil)

		err := f.session.AddBrokerAccount(ctx, models.NewBrokerAccount("robinhood", "R1", "", true))
		require.ErrorIs(t, err, models.ErrInvalidBroker)

		err = f.session.AddBrokerAccount(ctx, models.NewBrokerAccount(models.BrokerTopstep, "", "", true))
		require.ErrorIs(t, err, models.ErrMissingAccountID)

		assert.Empty(t, f.session.ConnectedAccounts())
		assert.Empty(t, f.store.Writes())
	})

	t.Run("persistence failure is returned but memory is updated", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		f.store.SetErr = fmt.Errorf("read-only")

		err := f.session.AddBrokerAccount(ctx, models.NewBrokerAccount(models.BrokerTopstep, "B1", "Combine", true))
		require.Error(t, err)
		assert.Len(t, f.session.ConnectedAccounts(), 1)
		assert.NotNil(t, f.session.ActiveAccount())
	})
}

func TestRemoveBrokerAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("removing the active account falls back to the first remaining", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		f.add(t, models.BrokerTradeLocker, "A1", "Main")
		b1 := f.add(t, models.BrokerTopstep, "B1", "Combine")

		removed, err := f.session.RemoveBrokerAccount(ctx, models.BrokerTradeLocker, "A1")
		require.NoError(t, err)
		require.True(t, removed)
		require.NotNil(t, f.session.ActiveAccount())
		assert.Equal(t, b1, *f.session.ActiveAccount())

		broker, _ := f.store.Value(ActiveBrokerKey)
		assert.Equal(t, "topstep", broker)

		removed, err = f.session.RemoveBrokerAccount(ctx, models.BrokerTopstep, "B1")
		require.NoError(t, err)
		require.True(t, removed)
		assert.Nil(t, f.session.ActiveAccount())
		assert.Nil(t, f.session.ActiveBroker())
		assert.Empty(t, f.session.ConnectedAccounts())
	})

	t.Run("removing an inactive account keeps the active account", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		a1 := f.add(t, models.BrokerTradeLocker, "A1", "Main")
		f.add(t, models.BrokerTopstep, "B1", "Combine")

		removed, err := f.session.RemoveBrokerAccount(ctx, models.BrokerTopstep, "B1")
		require.NoError(t, err)
		require.True(t, removed)
		assert.Equal(t, a1, *f.session.ActiveAccount())
		assert.Equal(t, []models.AccountKey{a1.Key()}, keysOf(f.session.ConnectedAccounts()))
	})

	t.Run("unknown account is a no-op", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		a1 := f.add(t, models.BrokerTradeLocker, "A1", "Main")
		writes := len(f.store.Writes())

		removed, err := f.session.RemoveBrokerAccount(ctx, models.BrokerTradeLocker, "A2")
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, a1, *f.session.ActiveAccount())
		assert.Len(t, f.store.Writes(), writes)
	})

	t.Run("removal order is preserved", func(t *testing.T) {
		f := newSessionFixture(t, nil)
		a1 := f.add(t, models.BrokerTradeLocker, "A1", "Main")
		f.add(t, models.BrokerTradeLocker, "A2", "Second")
		c1 := f.add(t, models.BrokerTradovate, "C1", "Futures")

		_, err := f.session.RemoveBrokerAccount(ctx, models.BrokerTradeLocker, "A2")
		require.NoError(t, err)
		assert.Equal(t, []models.AccountKey{a1.Key(), c1.Key()}, keysOf(f.session.ConnectedAccounts()))
	})
}
