package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// WriteOffs lists recorded write-offs.
func (c *Client) WriteOffs(ctx context.Context) ([]model.WriteOff, error) {
	return list[model.WriteOff](ctx, c, pathWriteOffs)
}

// CreateWriteOff writes off part of a bill's pending amount.
func (c *Client) CreateWriteOff(ctx context.Context, v model.WriteOff) error {
	return create(ctx, c, pathWriteOffs, v)
}

// UpdateWriteOff replaces the write-off with the given id.
func (c *Client) UpdateWriteOff(ctx context.Context, id string, v model.WriteOff) error {
	return update(ctx, c, pathWriteOffs, id, v)
}

// DeleteWriteOff deletes the write-off with the given id.
func (c *Client) DeleteWriteOff(ctx context.Context, id string) error {
	return remove(ctx, c, pathWriteOffs, id)
}
