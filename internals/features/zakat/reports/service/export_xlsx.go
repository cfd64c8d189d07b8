package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary = "Summary"
	SheetTrend   = "Trend"
	SheetMosques = "Mosques"
)

// Workbook: isi file XLSX laporan.
type Workbook struct {
	Title   string
	Period  string
	Summary Summary
	Trend   Trend
	Mosques []MosqueTotal
}

// BuildWorkbook menulis tiga sheet: Summary, Trend (+ saldo berjalan), Mosques.
func BuildWorkbook(w Workbook) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{Palette[0]}},
	})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	// ===== Summary =====
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	s := w.Summary
	summaryRows := [][]any{
		{w.Title, ""},
		{"Periode", w.Period},
		{"Total terkumpul", s.TotalCollected.InexactFloat64()},
		{"Total tersalurkan", s.TotalDistributed.InexactFloat64()},
		{"Saldo", s.Balance.InexactFloat64()},
		{"Tunai", s.CashCollected.InexactFloat64()},
		{"Barang (nilai)", s.InKindCollected.InexactFloat64()},
		{"Jumlah penerimaan", s.CollectionCount},
		{"Jumlah distribusi", s.DistributionCount},
		{"Distribusi approved", s.ApprovedCount},
		{"Distribusi pending", s.PendingCount},
		{"Distribusi rejected", s.RejectedCount},
	}
	for i, row := range summaryRows {
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetSummary, "B3", "B7", money); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetSummary, "A", "B", 24); err != nil {
		return nil, err
	}

	// ===== Trend =====
	if _, err := f.NewSheet(SheetTrend); err != nil {
		return nil, err
	}
	if err := setRow(f, SheetTrend, 1, []any{"Periode", "Terkumpul", "Tersalurkan", "Saldo berjalan"}); err != nil {
		return nil, err
	}
	running := RunningBalance(w.Trend.Points)
	for i, p := range w.Trend.Points {
		row := []any{p.Label, p.Collections.InexactFloat64(), p.Distributions.InexactFloat64(), running[i].Balance.InexactFloat64()}
		if err := setRow(f, SheetTrend, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetTrend, "A1", "D1", header); err != nil {
		return nil, err
	}
	if n := len(w.Trend.Points); n > 0 {
		if err := f.SetCellStyle(SheetTrend, "B2", fmt.Sprintf("D%d", n+1), money); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SheetTrend, "A", "D", 18); err != nil {
		return nil, err
	}

	// ===== Mosques =====
	if _, err := f.NewSheet(SheetMosques); err != nil {
		return nil, err
	}
	if err := setRow(f, SheetMosques, 1, []any{"Masjid", "Terkumpul", "Tersalurkan", "Saldo"}); err != nil {
		return nil, err
	}
	for i, m := range w.Mosques {
		row := []any{m.Name, m.Collected.InexactFloat64(), m.Distributed.InexactFloat64(), m.Balance.InexactFloat64()}
		if err := setRow(f, SheetMosques, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetMosques, "A1", "D1", header); err != nil {
		return nil, err
	}
	if n := len(w.Mosques); n > 0 {
		if err := f.SetCellStyle(SheetMosques, "B2", fmt.Sprintf("D%d", n+1), money); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SheetMosques, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetMosques, "B", "D", 18); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f.WriteToBuffer()
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
