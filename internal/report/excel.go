package report

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Total is one line of the summary block.
type Total struct {
	Label string
	Value decimal.Decimal
}

// Sheet is everything that goes into an exported workbook.
type Sheet struct {
	Title       string
	EntityLabel string
	Entity      string
	From        string
	To          string
	Company     string
	Totals      []Total
	Records     []Record
}

// NewSheet assembles a sheet for a definition and its fetched records,
// summing the definition's total columns.
func NewSheet(d Definition, entity, from, to string, records []Record) Sheet {
	s := Sheet{
		Title:       d.Title,
		EntityLabel: d.EntityLabel,
		Entity:      entity,
		From:        from,
		To:          to,
		Records:     records,
	}
	for _, col := range d.Totals {
		if len(s.Totals) == MaxTotals {
			break
		}
		s.Totals = append(s.Totals, Total{Label: "Total " + col, Value: Sum(records, col)})
	}
	return s
}

// Headers returns the column headers: the field order of the first record.
func (s Sheet) Headers() []string {
	if len(s.Records) == 0 {
		return nil
	}
	return s.Records[0].Keys()
}

// Write renders the sheet as an .xlsx workbook. logoPath may be empty.
func Write(w io.Writer, s Sheet, logoPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if logoPath != "" {
		err := f.AddPicture(SheetName, LogoCell, logoPath, &excelize.GraphicOptions{
			ScaleX:          0.5,
			ScaleY:          0.5,
			LockAspectRatio: true,
		})
		if err != nil {
			return fmt.Errorf("adding logo %s: %w", logoPath, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	title := s.Title
	if s.Company != "" {
		title = s.Company + " - " + s.Title
	}
	cells := []cellValueAt{
		{TitleCell, title},
		{cellName(1, EntityRow), s.EntityLabel},
		{cellName(2, EntityRow), s.Entity},
		{cellName(1, PeriodRow), "Period"},
		{cellName(2, PeriodRow), s.From + " to " + s.To},
	}
	for i, t := range s.Totals {
		if i == MaxTotals {
			break
		}
		cells = append(cells,
			cellValueAt{cellName(1, TotalsRow+i), t.Label},
			cellValueAt{cellName(2, TotalsRow+i), t.Value.InexactFloat64()},
		)
	}
	for _, c := range cells {
		if err := f.SetCellValue(SheetName, c.cell, c.value); err != nil {
			return fmt.Errorf("writing %s: %w", c.cell, err)
		}
	}
	if err := f.SetCellStyle(SheetName, TitleCell, TitleCell, titleStyle); err != nil {
		return fmt.Errorf("styling title: %w", err)
	}
	if err := f.SetCellStyle(SheetName, cellName(1, EntityRow), cellName(1, TotalsRow+MaxTotals-1), bold); err != nil {
		return fmt.Errorf("styling labels: %w", err)
	}

	headers := s.Headers()
	if len(headers) > 0 {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		if err := f.SetSheetRow(SheetName, cellName(DataCol, HeaderRow), &row); err != nil {
			return fmt.Errorf("writing header row: %w", err)
		}
		last := cellName(DataCol+len(headers)-1, HeaderRow)
		if err := f.SetCellStyle(SheetName, cellName(DataCol, HeaderRow), last, bold); err != nil {
			return fmt.Errorf("styling header row: %w", err)
		}

		lastCol, err := excelize.ColumnNumberToName(DataCol + len(headers) - 1)
		if err != nil {
			return err
		}
		firstCol, _ := excelize.ColumnNumberToName(DataCol)
		if err := f.SetColWidth(SheetName, firstCol, lastCol, 16); err != nil {
			return fmt.Errorf("sizing columns: %w", err)
		}
	}

	for i, r := range s.Records {
		vals := r.Values(headers)
		if err := f.SetSheetRow(SheetName, cellName(DataCol, DataRow+i), &vals); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type cellValueAt struct {
	cell  string
	value any
}

// cellName converts 1-based coordinates. Callers only pass layout
// constants, which are always valid.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
