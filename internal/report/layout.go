package report

// Fixed workbook layout. Rows are 1-based.
const (
	SheetName = "Report"

	LogoCell  = "A1"
	TitleCell = "C1"

	EntityRow = 3
	PeriodRow = 4

	// Summary totals occupy TotalsRow and the rows below it.
	TotalsRow = 5
	MaxTotals = 4

	HeaderRow = 10
	DataRow   = 11
	DataCol   = 1
)
