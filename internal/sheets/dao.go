package sheets

import (
	"context"
	"fmt"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"ticket-bot/internal/models"
)

const SheetOrders = "Orders"

// ReplaceOrders clears the Orders sheet and writes the full table again.
func (c *Client) ReplaceOrders(ctx context.Context, orders []models.Order) error {
	if err := c.clear(ctx, SheetOrders); err != nil {
		return fmt.Errorf("clear %s: %w", SheetOrders, err)
	}
	vr := &sheetsv4.ValueRange{Values: Rows(orders)}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, SheetOrders+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (c *Client) clear(ctx context.Context, sheet string) error {
	_, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, sheet+"!A:Z", &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}
