package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

func TestMonthReport(t *testing.T) {
	entries := []*domain.InventoryEntry{
		{
			FarmID:     "farm-1",
			UploadDate: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
			Items: []domain.LineItem{
				{Name: "feed", Quantity: "2 bags", Note: "low"},
				{Name: "corn", Quantity: "about 10"},
			},
		},
		{
			FarmID:     "farm-2",
			UploadDate: time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC),
			Items: []domain.LineItem{
				{Name: "grit", Quantity: "5"},
			},
		},
	}

	data, err := MonthReport(2024, 2, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	if len(rows) != 4 { // header + 3 line items
		t.Fatalf("want 4 rows, got %d", len(rows))
	}
	for i, title := range header {
		if rows[0][i] != title {
			t.Errorf("header col %d: want %q, got %q", i, title, rows[0][i])
		}
	}

	first := rows[1]
	if first[0] != "2024-02-03" || first[1] != "farm-1" || first[2] != "feed" || first[3] != "2 bags" || first[4] != "low" {
		t.Errorf("first data row wrong: %v", first)
	}
	last := rows[3]
	if last[0] != "2024-02-29" || last[2] != "grit" {
		t.Errorf("last data row wrong: %v", last)
	}

	// Quantity survives as text, not a coerced number.
	if rows[2][3] != "about 10" {
		t.Errorf("quantity coerced: %q", rows[2][3])
	}
}

func TestMonthReport_NoEntries(t *testing.T) {
	data, err := MonthReport(2024, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty month should produce a header-only sheet, got %d rows", len(rows))
	}
}
