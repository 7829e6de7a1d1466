package run

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/broker-session/src/data"
	"github.com/jiaming2012/broker-session/src/eventpubsub"
	"github.com/jiaming2012/broker-session/src/logger"
	"github.com/jiaming2012/broker-session/src/notifications"
	"github.com/jiaming2012/broker-session/src/session-api/models"
	"github.com/jiaming2012/broker-session/src/session-api/services"
	"github.com/jiaming2012/broker-session/src/telemetry"
	"github.com/jiaming2012/broker-session/src/utils"
)

type RunArgs struct {
	ConfigPath string
	GoEnv      string
	EnvDir     string
}

// App holds the wired session and the resources it needs released.
type App struct {
	Config  *models.SessionConfigYAML
	Session *services.BrokerSession
	Bus     *eventpubsub.Bus
	Center  *notifications.Center

	closeStore   func() error
	otelShutdown func(context.Context) error
}

func (a *App) Close(ctx context.Context) error {
	var err error

	if a.closeStore != nil {
		err = errors.Join(err, a.closeStore())
	}

	if a.otelShutdown != nil {
		err = errors.Join(err, a.otelShutdown(ctx))
	}

	return err
}

// Setup loads the environment and config, then builds a loaded session.
func Setup(ctx context.Context, args RunArgs) (*App, error) {
	if err := utils.InitEnvironmentVariables(args.EnvDir, args.GoEnv); err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	cfg, err := utils.LoadSessionConfig(args.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("Setup: %w", err)
	}

	return NewApp(ctx, cfg)
}

func NewApp(ctx context.Context, cfg *models.SessionConfigYAML) (*App, error) {
	if err := logger.Setup(cfg.Log, cfg.Telemetry.Enabled); err != nil {
		return nil, fmt.Errorf("NewApp: %w", err)
	}

	app := &App{Config: cfg}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.SetupOTelSDK(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, fmt.Errorf("NewApp: failed to setup otel sdk: %w", err)
		}

		app.otelShutdown = shutdown
	}

	store, closeStore, err := data.NewKeyValueStore(ctx, cfg.Storage)
	if err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("NewApp: %w", err)
	}

	app.closeStore = closeStore
	app.Bus = eventpubsub.NewBus("broker-session")
	app.Center = notifications.NewCenter()

	fetcher := services.NewSimulatedAccountFetcher(cfg.Session.SwitchLatency, cfg.Session.RefreshLatency)

	session, err := services.NewBrokerSession(store, fetcher, app.Bus, app.Center)
	if err != nil {
		app.Close(ctx)
		return nil, fmt.Errorf("NewApp: %w", err)
	}

	session.Load(ctx)
	app.Session = session

	log.Debugf("NewApp: session ready with %s storage", cfg.Storage.Driver)

	return app, nil
}
