package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerAccount(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		require.NoError(t, NewBrokerAccount(BrokerTopstep, "B1", "Combine", true).Validate())

		err := NewBrokerAccount(BrokerTopstep, " ", "Combine", true).Validate()
		require.ErrorIs(t, err, ErrMissingAccountID)

		err = NewBrokerAccount("unknown", "B1", "Combine", true).Validate()
		require.ErrorIs(t, err, ErrInvalidBroker)
	})

	t.Run("key matches broker and optional account id", func(t *testing.T) {
		key := NewBrokerAccount(BrokerTradeLocker, "A1", "", true).Key()

		assert.True(t, key.Matches(BrokerTradeLocker, "A1"))
		assert.True(t, key.Matches(BrokerTradeLocker, ""))
		assert.False(t, key.Matches(BrokerTradeLocker, "A2"))
		assert.False(t, key.Matches(BrokerTopstep, "A1"))
		assert.Equal(t, "tradelocker/A1", key.String())
	})

	t.Run("json uses the dashboard field names", func(t *testing.T) {
		ts := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
		account := NewBrokerAccount(BrokerTradeLocker, "A1", "Main", true)
		account.LastSync = &ts

		data, err := json.Marshal(account)
		require.NoError(t, err)
		require.JSONEq(t, `{"broker":"tradelocker","accountId":"A1","accountName":"Main","connected":true,"lastSync":"2024-03-04T15:30:00Z"}`, string(data))
	})

	t.Run("json omits lastSync before the first refresh", func(t *testing.T) {
		data, err := json.Marshal(NewBrokerAccount(BrokerTopstep, "B1", "Eval", false))
		require.NoError(t, err)
		require.NotContains(t, string(data), "lastSync")
	})

	t.Run("csv row", func(t *testing.T) {
		ts := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
		account := NewBrokerAccount(BrokerTradeLocker, "A1", "Main", true)
		account.LastSync = &ts

		row := NewBrokerAccountCSV(account, true)
		assert.Equal(t, "tradelocker", row.Broker)
		assert.Equal(t, "2024-03-04T15:30:00Z", row.LastSync)
		assert.True(t, row.Active)

		row = NewBrokerAccountCSV(NewBrokerAccount(BrokerTopstep, "B1", "", true), false)
		assert.Empty(t, row.LastSync)
	})
}
