package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

const pathBranches = "/admin/branches"

// Branches lists the company's branches.
func (c *Client) Branches(ctx context.Context) ([]model.Branch, error) {
	return list[model.Branch](ctx, c, pathBranches)
}

// CreateBranch registers a branch. Admin only.
func (c *Client) CreateBranch(ctx context.Context, b model.Branch) error {
	return create(ctx, c, pathBranches, b)
}

// UpdateBranch replaces the branch with the given id.
func (c *Client) UpdateBranch(ctx context.Context, id string, b model.Branch) error {
	return update(ctx, c, pathBranches, id, b)
}

// DeleteBranch deletes the branch with the given id.
func (c *Client) DeleteBranch(ctx context.Context, id string) error {
	return remove(ctx, c, pathBranches, id)
}
