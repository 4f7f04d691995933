package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// Expenses lists branch expenses.
func (c *Client) Expenses(ctx context.Context) ([]model.Expense, error) {
	return list[model.Expense](ctx, c, pathExpenses)
}

// CreateExpense records an expense.
func (c *Client) CreateExpense(ctx context.Context, v model.Expense) error {
	return create(ctx, c, pathExpenses, v)
}

// UpdateExpense replaces the expense with the given id.
func (c *Client) UpdateExpense(ctx context.Context, id string, v model.Expense) error {
	return update(ctx, c, pathExpenses, id, v)
}

// DeleteExpense deletes the expense with the given id.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return remove(ctx, c, pathExpenses, id)
}

// FilterExpenses returns the expenses of one branch within a date range.
func (c *Client) FilterExpenses(ctx context.Context, f Filter) ([]model.Expense, error) {
	return filter[model.Expense](ctx, c, pathExpenses, f)
}
