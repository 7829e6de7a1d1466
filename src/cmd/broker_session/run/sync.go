package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jiaming2012/broker-session/src/session-api/models"
	"github.com/jiaming2012/broker-session/src/session-api/services"
)

func Switch(ctx context.Context, w io.Writer, session *services.BrokerSession, broker, accountID string) error {
	name, err := models.ParseBrokerName(broker)
	if err != nil {
		return fmt.Errorf("Switch: %w", err)
	}

	if err := session.SwitchBroker(ctx, name, accountID); err != nil {
		return fmt.Errorf("Switch: %w", err)
	}

	fmt.Fprintf(w, "active account: %s\n", session.ActiveAccount())
	return nil
}

func Refresh(ctx context.Context, w io.Writer, session *services.BrokerSession) error {
	if session.ActiveAccount() == nil {
		fmt.Fprintln(w, "no active account")
		return nil
	}

	if err := session.RefreshBrokerData(ctx); err != nil {
		return fmt.Errorf("Refresh: %w", err)
	}

	account := session.ActiveAccount()
	if account != nil && account.LastSync != nil {
		fmt.Fprintf(w, "refreshed %s at %s\n", account, account.LastSync.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

func PrintStatus(w io.Writer, session *services.BrokerSession) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(session.Status()); err != nil {
		return fmt.Errorf("PrintStatus: %w", err)
	}

	return nil
}

// PrintNotifications writes every notification to w as it is emitted.
func PrintNotifications(w io.Writer, app *App) {
	app.Center.OnNotification(func(n *models.Notification) {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
	})
}
