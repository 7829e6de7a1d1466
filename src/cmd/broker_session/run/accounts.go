package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"github.com/jiaming2012/broker-session/src/session-api/models"
	"github.com/jiaming2012/broker-session/src/session-api/services"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatCSV   OutputFormat = "csv"
	OutputFormatJSON  OutputFormat = "json"
)

func (f OutputFormat) Validate() error {
	switch f {
	case OutputFormatTable:
		break
	case OutputFormatCSV:
		break
	case OutputFormatJSON:
		break
	default:
		return fmt.Errorf("OutputFormat: unsupported format: %s", f)
	}

	return nil
}

type AddAccountArgs struct {
	Broker       string
	AccountID    string
	AccountName  string
	Disconnected bool
}

func ListAccounts(w io.Writer, session *services.BrokerSession, format OutputFormat) error {
	if err := format.Validate(); err != nil {
		return fmt.Errorf("ListAccounts: %w", err)
	}

	state := session.Snapshot()

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state.ConnectedAccounts); err != nil {
			return fmt.Errorf("ListAccounts: failed to encode json: %w", err)
		}
	case OutputFormatCSV:
		var rows []*models.BrokerAccountCSV
		for _, account := range state.ConnectedAccounts {
			rows = append(rows, models.NewBrokerAccountCSV(account, state.IsActive(account.Key())))
		}

		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("ListAccounts: failed to write csv: %w", err)
		}
	default:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"", "Broker", "Account ID", "Name", "Connected", "Last Sync"})

		for _, account := range state.ConnectedAccounts {
			row := models.NewBrokerAccountCSV(account, state.IsActive(account.Key()))

			marker := ""
			if row.Active {
				marker = "*"
			}

			table.Append([]string{marker, row.Broker, row.AccountID, row.AccountName, fmt.Sprintf("%t", row.Connected), row.LastSync})
		}

		table.Render()
	}

	return nil
}

func AddAccount(ctx context.Context, w io.Writer, session *services.BrokerSession, args AddAccountArgs) error {
	broker, err := models.ParseBrokerName(args.Broker)
	if err != nil {
		return fmt.Errorf("AddAccount: %w", err)
	}

	account := models.NewBrokerAccount(broker, args.AccountID, args.AccountName, !args.Disconnected)
	if err := session.AddBrokerAccount(ctx, account); err != nil {
		return fmt.Errorf("AddAccount: %w", err)
	}

	fmt.Fprintf(w, "added %s\n", account)
	return nil
}

func RemoveAccount(ctx context.Context, w io.Writer, session *services.BrokerSession, broker, accountID string) error {
	name, err := models.ParseBrokerName(broker)
	if err != nil {
		return fmt.Errorf("RemoveAccount: %w", err)
	}

	removed, err := session.RemoveBrokerAccount(ctx, name, accountID)
	if err != nil {
		return fmt.Errorf("RemoveAccount: %w", err)
	}

	key := models.NewAccountKey(name, accountID)
	if !removed {
		fmt.Fprintf(w, "%s is not connected\n", key)
		return nil
	}

	fmt.Fprintf(w, "removed %s\n", key)
	return nil
}
