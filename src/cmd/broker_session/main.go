package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/broker-session/src/cmd/broker_session/run"
)

var rootCmd = &cobra.Command{
	Use:   "broker-session",
	Short: "Manage connected broker accounts and the active trading account",
	Long: `broker-session keeps track of the broker accounts connected to a trading desk and which
one is active. State is persisted to the configured key-value store, so every command sees the
result of the previous one.`,
}

func setupApp(cmd *cobra.Command) (*run.App, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	goEnv, err := cmd.Flags().GetString("go-env")
	if err != nil {
		return nil, err
	}

	envDir, err := cmd.Flags().GetString("env-dir")
	if err != nil {
		return nil, err
	}

	return run.Setup(cmd.Context(), run.RunArgs{
		ConfigPath: configPath,
		GoEnv:      goEnv,
		EnvDir:     envDir,
	})
}

// withApp runs fn against a freshly loaded session and releases it afterwards.
func withApp(fn func(cmd *cobra.Command, app *run.App) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := setupApp(cmd)
		if err != nil {
			log.Fatalf("error setting up: %v", err)
		}

		run.PrintNotifications(cmd.ErrOrStderr(), app)

		runErr := fn(cmd, app)

		if err := app.Close(context.Background()); err != nil {
			log.Errorf("error closing: %v", err)
		}

		if runErr != nil {
			log.Fatalf("error running command: %v", runErr)
		}
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session over HTTP and websocket",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := setupApp(cmd)
		if err != nil {
			log.Fatalf("error setting up: %v", err)
		}

		err = run.Serve(cmd.Context(), app)

		if closeErr := app.Close(context.Background()); closeErr != nil {
			log.Errorf("error closing: %v", closeErr)
		}

		if err != nil {
			log.Fatalf("error serving: %v", err)
		}
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List, add and remove connected broker accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected broker accounts",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		return run.ListAccounts(cmd.OutOrStdout(), app.Session, run.OutputFormat(format))
	}),
}

var accountsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Connect a broker account",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		args := run.AddAccountArgs{}
		var err error

		if args.Broker, err = cmd.Flags().GetString("broker"); err != nil {
			return err
		}

		if args.AccountID, err = cmd.Flags().GetString("account-id"); err != nil {
			return err
		}

		if args.AccountName, err = cmd.Flags().GetString("name"); err != nil {
			return err
		}

		if args.Disconnected, err = cmd.Flags().GetBool("disconnected"); err != nil {
			return err
		}

		return run.AddAccount(cmd.Context(), cmd.OutOrStdout(), app.Session, args)
	}),
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Disconnect a broker account",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		broker, err := cmd.Flags().GetString("broker")
		if err != nil {
			return err
		}

		accountID, err := cmd.Flags().GetString("account-id")
		if err != nil {
			return err
		}

		return run.RemoveAccount(cmd.Context(), cmd.OutOrStdout(), app.Session, broker, accountID)
	}),
}

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Make a broker account active",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		broker, err := cmd.Flags().GetString("broker")
		if err != nil {
			return err
		}

		accountID, err := cmd.Flags().GetString("account-id")
		if err != nil {
			return err
		}

		return run.Switch(cmd.Context(), cmd.OutOrStdout(), app.Session, broker, accountID)
	}),
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-sync the active broker account",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		return run.Refresh(cmd.Context(), cmd.OutOrStdout(), app.Session)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print session status and sync latency stats",
	Run: withApp(func(cmd *cobra.Command, app *run.App) error {
		return run.PrintStatus(cmd.OutOrStdout(), app.Session)
	}),
}

func main() {
	rootCmd.PersistentFlags().StringVarP(new(string), "config", "c", "", "Path to the yaml config file. Defaults are used when empty.")
	rootCmd.PersistentFlags().StringVar(new(string), "go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().StringVar(new(string), "env-dir", ".", "Directory containing the .env.<go-env> file.")

	accountsListCmd.Flags().StringP("format", "f", "table", "Output format: table, csv or json.")

	accountsAddCmd.Flags().StringP("broker", "b", "", "Broker name, e.g. 'topstep'. This flag is required.")
	accountsAddCmd.Flags().StringP("account-id", "a", "", "Account id at the broker. This flag is required.")
	accountsAddCmd.Flags().StringP("name", "n", "", "Display name for the account.")
	accountsAddCmd.Flags().Bool("disconnected", false, "Add the account as disconnected.")
	accountsAddCmd.MarkFlagRequired("broker")
	accountsAddCmd.MarkFlagRequired("account-id")

	accountsRemoveCmd.Flags().StringP("broker", "b", "", "Broker name. This flag is required.")
	accountsRemoveCmd.Flags().StringP("account-id", "a", "", "Account id at the broker. This flag is required.")
	accountsRemoveCmd.MarkFlagRequired("broker")
	accountsRemoveCmd.MarkFlagRequired("account-id")

	switchCmd.Flags().StringP("broker", "b", "", "Broker to switch to. This flag is required.")
	switchCmd.Flags().StringP("account-id", "a", "", "Account id. The first account of the broker is used when empty.")
	switchCmd.MarkFlagRequired("broker")

	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd, accountsRemoveCmd)
	rootCmd.AddCommand(serveCmd, accountsCmd, switchCmd, refreshCmd, statusCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
