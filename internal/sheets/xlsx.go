package sheets

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ticket-bot/internal/models"
)

const XLSXFileName = "tickets.xlsx"

// WriteXLSX builds the workbook sent to admins. The table is regenerated from the
// store every time, so it is only an export, never a source of truth.
func WriteXLSX(orders []models.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range Rows(orders) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
