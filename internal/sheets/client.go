// Package sheets renders the order table. Rows and WriteXLSX build the xlsx
// document sent in chats and served by the export link; Client keeps an optional
// Google spreadsheet in step with the store after every change.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client mirrors the order table into a Google spreadsheet. The store stays the
// source of truth; the sheet is overwritten whole on each refresh.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// New authenticates with a service-account key file. A missing key file fails
// at startup rather than on the first order.
func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("mirror: spreadsheet id is empty")
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("mirror credentials: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("mirror service: %w", err)
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }
