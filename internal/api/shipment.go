package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// LorryReceipts lists LRs.
func (c *Client) LorryReceipts(ctx context.Context) ([]model.LorryReceipt, error) {
	return list[model.LorryReceipt](ctx, c, pathLRs)
}

// CreateLorryReceipt creates an LR. Returns ErrDuplicate if the LR number is taken.
func (c *Client) CreateLorryReceipt(ctx context.Context, v model.LorryReceipt) error {
	return create(ctx, c, pathLRs, v)
}

// UpdateLorryReceipt replaces the LR with the given id.
func (c *Client) UpdateLorryReceipt(ctx context.Context, id string, v model.LorryReceipt) error {
	return update(ctx, c, pathLRs, id, v)
}

// DeleteLorryReceipt deletes the LR with the given id.
func (c *Client) DeleteLorryReceipt(ctx context.Context, id string) error {
	return remove(ctx, c, pathLRs, id)
}

// CheckLRNumber returns ErrDuplicate if the LR number is already in use.
func (c *Client) CheckLRNumber(ctx context.Context, number string) error {
	return checkNumber(ctx, c, pathLRs, number)
}

// FilterLorryReceipts returns the LRs of one client within a date range.
func (c *Client) FilterLorryReceipts(ctx context.Context, f Filter) ([]model.LorryReceipt, error) {
	return filter[model.LorryReceipt](ctx, c, pathLRs, f)
}

// FreightMemos lists FMs.
func (c *Client) FreightMemos(ctx context.Context) ([]model.FreightMemo, error) {
	return list[model.FreightMemo](ctx, c, pathFMs)
}

// CreateFreightMemo creates an FM. Returns ErrDuplicate if the FM number is taken.
func (c *Client) CreateFreightMemo(ctx context.Context, v model.FreightMemo) error {
	return create(ctx, c, pathFMs, v)
}

// UpdateFreightMemo replaces the FM with the given id.
func (c *Client) UpdateFreightMemo(ctx context.Context, id string, v model.FreightMemo) error {
	return update(ctx, c, pathFMs, id, v)
}

// DeleteFreightMemo deletes the FM with the given id.
func (c *Client) DeleteFreightMemo(ctx context.Context, id string) error {
	return remove(ctx, c, pathFMs, id)
}

// CheckFMNumber returns ErrDuplicate if the FM number is already in use.
func (c *Client) CheckFMNumber(ctx context.Context, number string) error {
	return checkNumber(ctx, c, pathFMs, number)
}

// FilterFreightMemos returns the FMs of one vendor within a date range.
func (c *Client) FilterFreightMemos(ctx context.Context, f Filter) ([]model.FreightMemo, error) {
	return filter[model.FreightMemo](ctx, c, pathFMs, f)
}

// FMRecords lists payments made against FMs.
func (c *Client) FMRecords(ctx context.Context) ([]model.PaymentRecord, error) {
	return list[model.PaymentRecord](ctx, c, pathFMRecords)
}

// CreateFMRecord records a payment against an FM.
func (c *Client) CreateFMRecord(ctx context.Context, v model.PaymentRecord) error {
	return create(ctx, c, pathFMRecords, v)
}

// UpdateFMRecord replaces the FM payment record with the given id.
func (c *Client) UpdateFMRecord(ctx context.Context, id string, v model.PaymentRecord) error {
	return update(ctx, c, pathFMRecords, id, v)
}

// DeleteFMRecord deletes the FM payment record with the given id.
func (c *Client) DeleteFMRecord(ctx context.Context, id string) error {
	return remove(ctx, c, pathFMRecords, id)
}
