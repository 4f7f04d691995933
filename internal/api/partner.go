package api

import (
	"context"

	"github.com/nhle/freightdesk/internal/model"
)

// Clients lists all clients.
func (c *Client) Clients(ctx context.Context) ([]model.Client, error) {
	return list[model.Client](ctx, c, pathClients)
}

// CreateClient creates a client. Returns ErrDuplicate if the name is taken.
func (c *Client) CreateClient(ctx context.Context, v model.Client) error {
	return create(ctx, c, pathClients, v)
}

// UpdateClient replaces the client with the given id.
func (c *Client) UpdateClient(ctx context.Context, id string, v model.Client) error {
	return update(ctx, c, pathClients, id, v)
}

// DeleteClient deletes the client with the given id.
func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return remove(ctx, c, pathClients, id)
}

// Vendors lists all vendors.
func (c *Client) Vendors(ctx context.Context) ([]model.Vendor, error) {
	return list[model.Vendor](ctx, c, pathVendors)
}

// CreateVendor creates a vendor. Returns ErrDuplicate if the name is taken.
func (c *Client) CreateVendor(ctx context.Context, v model.Vendor) error {
	return create(ctx, c, pathVendors, v)
}

// UpdateVendor replaces the vendor with the given id.
func (c *Client) UpdateVendor(ctx context.Context, id string, v model.Vendor) error {
	return update(ctx, c, pathVendors, id, v)
}

// DeleteVendor deletes the vendor with the given id.
func (c *Client) DeleteVendor(ctx context.Context, id string) error {
	return remove(ctx, c, pathVendors, id)
}

// Vehicles lists all vehicles.
func (c *Client) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	return list[model.Vehicle](ctx, c, pathVehicles)
}

// CreateVehicle registers a vehicle.
func (c *Client) CreateVehicle(ctx context.Context, v model.Vehicle) error {
	return create(ctx, c, pathVehicles, v)
}

// UpdateVehicle replaces the vehicle with the given id.
func (c *Client) UpdateVehicle(ctx context.Context, id string, v model.Vehicle) error {
	return update(ctx, c, pathVehicles, id, v)
}

// DeleteVehicle deletes the vehicle with the given id.
func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return remove(ctx, c, pathVehicles, id)
}
