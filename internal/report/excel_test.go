package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{
			{"Bill No", fmt.Sprintf("B-%03d", i+1)},
			{"Date", "2024-05-02"},
			{"LRs", []string{"LR-1", "LR-2"}},
			{"Amount", decimal.NewFromInt(int64(100 * (i + 1)))},
		}
	}
	return recs
}

func readBack(t *testing.T, s Sheet) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s, ""))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite_Layout(t *testing.T) {
	def, err := Lookup(KindClientBills)
	require.NoError(t, err)
	s := NewSheet(def, "Acme", "2024-05-01", "2024-05-31", sampleRecords(3))

	f := readBack(t, s)
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	cell := func(c string) string {
		v, err := f.GetCellValue(SheetName, c)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Client Bill Statement", cell(TitleCell))
	assert.Equal(t, "Client", cell("A3"))
	assert.Equal(t, "Acme", cell("B3"))
	assert.Equal(t, "2024-05-01 to 2024-05-31", cell("B4"))
	assert.Equal(t, "Total Amount", cell("A5"))
	assert.Equal(t, "600", cell("B5"))
	assert.Equal(t, "Total Received", cell("A6"))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, DataRow-1+3)
	assert.Equal(t, []string{"Bill No", "Date", "LRs", "Amount"}, rows[HeaderRow-1])
	for i := 0; i < 3; i++ {
		row := rows[DataRow-1+i]
		assert.Equal(t, fmt.Sprintf("B-%03d", i+1), row[0])
		assert.Equal(t, "LR-1, LR-2", row[2])
	}
}

func TestWrite_HeadersFollowFirstRecord(t *testing.T) {
	recs := []Record{
		{{"Z", "1"}, {"A", "2"}},
		{{"A", "3"}, {"Z", "4"}, {"Extra", "x"}},
	}
	f := readBack(t, Sheet{Title: "t", Records: recs})

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A"}, rows[HeaderRow-1])
	assert.Equal(t, []string{"4", "3"}, rows[DataRow])
}

func TestWrite_NoRecords(t *testing.T) {
	f := readBack(t, Sheet{Title: "Empty"})
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Less(t, len(rows), HeaderRow)
}

func TestNewSheet_CapsTotals(t *testing.T) {
	d := Definition{Title: "x", Totals: []string{"a", "b", "c", "d", "e"}}
	s := NewSheet(d, "e", "2024-01-01", "2024-01-02", nil)
	assert.Len(t, s.Totals, MaxTotals)
}

func TestSum(t *testing.T) {
	recs := []Record{
		{{"Amount", decimal.RequireFromString("10.25")}, {"Packages", 3}},
		{{"Amount", decimal.RequireFromString("4.75")}, {"Packages", 2}},
		{{"Other", "x"}},
	}
	assert.True(t, Sum(recs, "Amount").Equal(decimal.NewFromInt(15)))
	assert.True(t, Sum(recs, "Packages").Equal(decimal.NewFromInt(5)))
	assert.True(t, Sum(recs, "Missing").IsZero())
}
