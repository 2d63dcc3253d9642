// Package export renders inventory data as spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

const sheetName = "Inventory"

var header = []string{"Date", "Farm", "Item", "Quantity", "Note"}

// MonthReport builds an xlsx workbook with one row per line item, in entry
// order. Quantity is written as text, matching how it is stored.
func MonthReport(year, month int, entries []*domain.InventoryEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, entry := range entries {
		day := entry.Day()
		for _, item := range entry.Items {
			values := []any{day, entry.FarmID, item.Name, item.Quantity, item.Note}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write report %04d-%02d: %w", year, month, err)
	}
	return buf.Bytes(), nil
}
