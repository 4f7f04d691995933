package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// PODs lists proof-of-delivery records.
func (c *Client) PODs(ctx context.Context) ([]model.POD, error) {
	return list[model.POD](ctx, c, pathPODs)
}

// CreatePOD records a proof of delivery.
func (c *Client) CreatePOD(ctx context.Context, v model.POD) error {
	return create(ctx, c, pathPODs, v)
}

// UpdatePOD replaces the POD with the given id.
func (c *Client) UpdatePOD(ctx context.Context, id string, v model.POD) error {
	return update(ctx, c, pathPODs, id, v)
}

// DeletePOD deletes the POD with the given id.
func (c *Client) DeletePOD(ctx context.Context, id string) error {
	return remove(ctx, c, pathPODs, id)
}
