package service

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	a := uuid.New()
	cols := []CollectionRecord{cash("300", day(2024, 1, 5)), cash("200", day(2024, 2, 5))}
	cols[0].MosqueID, cols[1].MosqueID = a, a
	dists := []DistributionRecord{dist("100", "approved", day(2024, 2, 9))}
	dists[0].MosqueID = a

	b := &Bucketer{Fallback: false}
	buf, err := BuildWorkbook(Workbook{
		Title:   "Laporan Zakat",
		Period:  "2024-01-01 s/d 2024-02-29",
		Summary: Summarize(cols, dists, nil),
		Trend:   b.Trend(cols, dists, Monthly, nil),
		Mosques: TotalsByMosque([]MosqueRef{{ID: a, Name: "Al-Falah"}}, cols, dists, nil),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetTrend, SheetMosques}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Laporan Zakat", v)

	trend, err := f.GetRows(SheetTrend)
	require.NoError(t, err)
	require.Len(t, trend, 3) // header + 2 bulan
	assert.Equal(t, "1/2024", trend[1][0])
	assert.Equal(t, "2/2024", trend[2][0])

	mosques, err := f.GetRows(SheetMosques)
	require.NoError(t, err)
	require.Len(t, mosques, 2)
	assert.Equal(t, "Al-Falah", mosques[1][0])
}
