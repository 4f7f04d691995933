package report

import (
	"context"
	"fmt"

	"github.com/nhle/freightdesk/internal/api"
	"github.com/nhle/freightdesk/internal/model"
)

// Kind identifies a report.
type Kind string

const (
	KindClientBills    Kind = "client-bills"
	KindVendorFMs      Kind = "vendor-fms"
	KindClientLRs      Kind = "client-lrs"
	KindBranchExpenses Kind = "branch-expenses"
)

// Source is the part of the backend the reports read from.
type Source interface {
	FilterBills(ctx context.Context, f api.Filter) ([]model.Bill, error)
	FilterFreightMemos(ctx context.Context, f api.Filter) ([]model.FreightMemo, error)
	FilterLorryReceipts(ctx context.Context, f api.Filter) ([]model.LorryReceipt, error)
	FilterExpenses(ctx context.Context, f api.Filter) ([]model.Expense, error)
}

// Definition describes one report kind.
type Definition struct {
	Kind  Kind
	Title string

	// EntityLabel names what the report is filtered by.
	EntityLabel string

	// Totals lists the columns summed into the summary block.
	Totals []string

	fetch func(ctx context.Context, src Source, f api.Filter) ([]Record, error)
}

// Definitions lists every report in menu order.
var Definitions = []Definition{
	{
		Kind:        KindClientBills,
		Title:       "Client Bill Statement",
		EntityLabel: "Client",
		Totals:      []string{"Amount", "Received", "Pending"},
		fetch:       fetchBills,
	},
	{
		Kind:        KindVendorFMs,
		Title:       "Vendor Freight Memo Statement",
		EntityLabel: "Vendor",
		Totals:      []string{"Hire", "Advance", "Balance"},
		fetch:       fetchFMs,
	},
	{
		Kind:        KindClientLRs,
		Title:       "Client Lorry Receipt Register",
		EntityLabel: "Client",
		Totals:      []string{"Packages", "Weight", "Freight"},
		fetch:       fetchLRs,
	},
	{
		Kind:        KindBranchExpenses,
		Title:       "Branch Expense Statement",
		EntityLabel: "Branch",
		Totals:      []string{"Amount"},
		fetch:       fetchExpenses,
	},
}

// Lookup returns the definition of kind.
func Lookup(kind Kind) (Definition, error) {
	for _, d := range Definitions {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown report %q", kind)
}

// Fetch runs the filter query and flattens the result.
func (d Definition) Fetch(ctx context.Context, src Source, f api.Filter) ([]Record, error) {
	recs, err := d.fetch(ctx, src, f)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", d.Kind, err)
	}
	return recs, nil
}

func fetchBills(ctx context.Context, src Source, f api.Filter) ([]Record, error) {
	bills, err := src.FilterBills(ctx, f)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(bills))
	for _, b := range bills {
		recs = append(recs, Record{
			{"Bill No", b.BillNumber},
			{"Date", b.Date},
			{"LRs", b.LRNumbers},
			{"Amount", b.Amount},
			{"Received", b.Received},
			{"Pending", b.Pending},
		})
	}
	return recs, nil
}

func fetchFMs(ctx context.Context, src Source, f api.Filter) ([]Record, error) {
	fms, err := src.FilterFreightMemos(ctx, f)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(fms))
	for _, m := range fms {
		recs = append(recs, Record{
			{"FM No", m.FMNumber},
			{"Date", m.Date},
			{"Vehicle", m.VehicleNumber},
			{"From", m.From},
			{"To", m.To},
			{"LRs", m.LRNumbers},
			{"Hire", m.HireAmount},
			{"Advance", m.Advance},
			{"TDS %", m.TDSPercent},
			{"Balance", m.Balance},
		})
	}
	return recs, nil
}

func fetchLRs(ctx context.Context, src Source, f api.Filter) ([]Record, error) {
	lrs, err := src.FilterLorryReceipts(ctx, f)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(lrs))
	for _, lr := range lrs {
		recs = append(recs, Record{
			{"LR No", lr.LRNumber},
			{"Date", lr.Date},
			{"Consignor", lr.Consignor},
			{"Consignee", lr.Consignee},
			{"From", lr.From},
			{"To", lr.To},
			{"Vehicle", lr.VehicleNumber},
			{"Packages", lr.Packages},
			{"Weight", lr.Weight},
			{"Freight", lr.Freight},
		})
	}
	return recs, nil
}

func fetchExpenses(ctx context.Context, src Source, f api.Filter) ([]Record, error) {
	exps, err := src.FilterExpenses(ctx, f)
	if err != nil {
		return nil, err
	}
	recs := make([]Record, 0, len(exps))
	for _, e := range exps {
		recs = append(recs, Record{
			{"Date", e.Date},
			{"Category", e.Category},
			{"Amount", e.Amount},
			{"Remarks", e.Remarks},
		})
	}
	return recs, nil
}
