package run

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

func newTestApp(t *testing.T, storage models.StorageConfigYAML) *App {
	cfg := models.NewDefaultSessionConfig()
	cfg.Storage = storage
	cfg.Session.SwitchLatency = time.Millisecond
	cfg.Session.RefreshLatency = time.Millisecond
	cfg.ApplyDefaults()

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close(context.Background()) })

	return app
}

func seedAccounts(t *testing.T, app *App) {
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, AddAccount(ctx, &out, app.Session, AddAccountArgs{Broker: "tradelocker", AccountID: "A1", AccountName: "Main"}))
	require.NoError(t, AddAccount(ctx, &out, app.Session, AddAccountArgs{Broker: "TopStep", AccountID: "B1", AccountName: "Combine", Disconnected: true}))
}

func TestAccountsCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("add rejects unknown brokers", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})

		err := AddAccount(ctx, &bytes.Buffer{}, app.Session, AddAccountArgs{Broker: "robinhood", AccountID: "R1"})
		require.ErrorIs(t, err, models.ErrInvalidBroker)
	})

	t.Run("list as json", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		var out bytes.Buffer
		require.NoError(t, ListAccounts(&out, app.Session, OutputFormatJSON))

		var accounts []models.BrokerAccount
		require.NoError(t, json.Unmarshal(out.Bytes(), &accounts))
		require.Len(t, accounts, 2)
		assert.Equal(t, models.BrokerTopstep, accounts[1].Broker)
		assert.False(t, accounts[1].Connected)
	})

	t.Run("list as csv", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		var out bytes.Buffer
		require.NoError(t, ListAccounts(&out, app.Session, OutputFormatCSV))

		var rows []*models.BrokerAccountCSV
		require.NoError(t, gocsv.Unmarshal(strings.NewReader(out.String()), &rows))
		require.Len(t, rows, 2)
		assert.True(t, rows[0].Active)
		assert.False(t, rows[1].Active)
		assert.Equal(t, "B1", rows[1].AccountID)
	})

	t.Run("list as table", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		var out bytes.Buffer
		require.NoError(t, ListAccounts(&out, app.Session, OutputFormatTable))
		assert.Contains(t, out.String(), "tradelocker")
		assert.Contains(t, out.String(), "Combine")
	})

	t.Run("unsupported format", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		require.Error(t, ListAccounts(&bytes.Buffer{}, app.Session, "xml"))
	})

	t.Run("remove", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		var out bytes.Buffer
		require.NoError(t, RemoveAccount(ctx, &out, app.Session, "tradelocker", "A1"))
		assert.Contains(t, out.String(), "removed tradelocker/A1")
		assert.Equal(t, models.BrokerTopstep, *app.Session.ActiveBroker())

		out.Reset()
		require.NoError(t, RemoveAccount(ctx, &out, app.Session, "tradelocker", "A1"))
		assert.Contains(t, out.String(), "is not connected")
	})
}

func TestSyncCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("switch and refresh print notifications", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		var notifications bytes.Buffer
		PrintNotifications(&notifications, app)

		var out bytes.Buffer
		require.NoError(t, Switch(ctx, &out, app.Session, "topstep", ""))
		assert.Contains(t, out.String(), "topstep/B1")

		require.NoError(t, Refresh(ctx, &out, app.Session))
		assert.Contains(t, out.String(), "refreshed Combine (topstep/B1)")

		assert.Contains(t, notifications.String(), "[success] Broker switched")
		assert.Contains(t, notifications.String(), "[success] Broker data refreshed")
	})

	t.Run("switch to unknown account", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)

		err := Switch(ctx, &bytes.Buffer{}, app.Session, "tradovate", "")
		require.ErrorIs(t, err, models.ErrBrokerAccountNotFound)
	})

	t.Run("refresh without accounts", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})

		var out bytes.Buffer
		require.NoError(t, Refresh(ctx, &out, app.Session))
		assert.Contains(t, out.String(), "no active account")
	})

	t.Run("status", func(t *testing.T) {
		app := newTestApp(t, models.StorageConfigYAML{Driver: models.StorageDriverMemory})
		seedAccounts(t, app)
		require.NoError(t, Switch(ctx, &bytes.Buffer{}, app.Session, "topstep", "B1"))

		var out bytes.Buffer
		require.NoError(t, PrintStatus(&out, app.Session))

		var status models.SessionStatus
		require.NoError(t, json.Unmarshal(out.Bytes(), &status))
		assert.Equal(t, 2, status.Accounts)
		assert.Equal(t, 1, status.SwitchStats.Count)
	})
}

func TestAppPersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	storage := models.StorageConfigYAML{
		Driver:    models.StorageDriverSqlite,
		DSN:       filepath.Join(t.TempDir(), "session.db"),
		Namespace: "cli",
	}

	first := newTestApp(t, storage)
	seedAccounts(t, first)
	require.NoError(t, Switch(ctx, &bytes.Buffer{}, first.Session, "topstep", "B1"))
	require.NoError(t, first.Close(ctx))

	second := newTestApp(t, storage)
	require.NotNil(t, second.Session.ActiveAccount())
	assert.Equal(t, "B1", second.Session.ActiveAccount().AccountID)
	assert.Len(t, second.Session.ConnectedAccounts(), 2)
}
