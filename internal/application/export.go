package application

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportReport renders the whole link table as an xlsx workbook.
func (s *WhitelistServiceImpl) ExportReport(ctx context.Context) ([]byte, error) {
	links, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load links for export: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Whitelist"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"UUID", "Username", "Discord ID", "Discord Username", "Linked At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, l := range links {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.UUID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.Username)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), l.DiscordID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), l.DiscordName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), l.LinkedAt.Format(time.RFC3339))
		row++
	}

	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "D", 20)
	f.SetColWidth(sheet, "E", "E", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}
	return buf.Bytes(), nil
}
