package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// Bills lists bills with their backend-computed received and pending amounts.
func (c *Client) Bills(ctx context.Context) ([]model.Bill, error) {
	return list[model.Bill](ctx, c, pathBills)
}

// CreateBill raises a bill. Returns ErrDuplicate if the bill number is taken.
func (c *Client) CreateBill(ctx context.Context, v model.Bill) error {
	return create(ctx, c, pathBills, v)
}

// UpdateBill replaces the bill with the given id.
func (c *Client) UpdateBill(ctx context.Context, id string, v model.Bill) error {
	return update(ctx, c, pathBills, id, v)
}

// DeleteBill deletes the bill with the given id.
func (c *Client) DeleteBill(ctx context.Context, id string) error {
	return remove(ctx, c, pathBills, id)
}

// FilterBills returns the bills of one client within a date range.
func (c *Client) FilterBills(ctx context.Context, f Filter) ([]model.Bill, error) {
	return filter[model.Bill](ctx, c, pathBills, f)
}

// BillRecords lists payments received against bills.
func (c *Client) BillRecords(ctx context.Context) ([]model.PaymentRecord, error) {
	return list[model.PaymentRecord](ctx, c, pathBillRecords)
}

// CreateBillRecord records a payment against a bill.
func (c *Client) CreateBillRecord(ctx context.Context, v model.PaymentRecord) error {
	return create(ctx, c, pathBillRecords, v)
}

// UpdateBillRecord replaces the bill payment record with the given id.
func (c *Client) UpdateBillRecord(ctx context.Context, id string, v model.PaymentRecord) error {
	return update(ctx, c, pathBillRecords, id, v)
}

// DeleteBillRecord deletes the bill payment record with the given id.
func (c *Client) DeleteBillRecord(ctx context.Context, id string) error {
	return remove(ctx, c, pathBillRecords, id)
}

// Credits lists on-account credits.
func (c *Client) Credits(ctx context.Context) ([]model.Credit, error) {
	return list[model.Credit](ctx, c, pathCredits)
}

// CreateCredit records a credit.
func (c *Client) CreateCredit(ctx context.Context, v model.Credit) error {
	return create(ctx, c, pathCredits, v)
}

// UpdateCredit replaces the credit with the given id.
func (c *Client) UpdateCredit(ctx context.Context, id string, v model.Credit) error {
	return update(ctx, c, pathCredits, id, v)
}

// DeleteCredit deletes the credit with the given id.
func (c *Client) DeleteCredit(ctx context.Context, id string) error {
	return remove(ctx, c, pathCredits, id)
}
