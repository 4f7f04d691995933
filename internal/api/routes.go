package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/freightdesk/internal/model"
)

// Resource path prefixes on the backend.
const (
	pathClients     = "/partner/clients"
	pathVendors     = "/partner/vendors"
	pathVehicles    = "/partner/vehicles"
	pathLRs         = "/shipment/lr"
	pathFMs         = "/shipment/fm"
	pathFMRecords   = "/shipment/fm-record"
	pathBills       = "/billing/bill"
	pathBillRecords = "/billing/bill-record"
	pathCredits     = "/billing/credit"
	pathPODs        = "/pod"
	pathExpenses    = "/expense"
	pathWriteOffs   = "/writeoff"
)

// entityPaths maps notification entity types onto their resource prefix.
var entityPaths = map[model.EntityType]string{
	model.EntityLR:         pathLRs,
	model.EntityFM:         pathFMs,
	model.EntityBill:       pathBills,
	model.EntityPOD:        pathPODs,
	model.EntityCredit:     pathCredits,
	model.EntityExpense:    pathExpenses,
	model.EntityBillRecord: pathBillRecords,
	model.EntityFMRecord:   pathFMRecords,
}

// EntityPath returns the resource prefix for a notification entity type.
func EntityPath(e model.EntityType) (string, error) {
	p, ok := entityPaths[e]
	if !ok {
		return "", fmt.Errorf("no backend resource for entity %q", e)
	}
	return p, nil
}

func itemPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}

func list[T any](ctx context.Context, c *Client, prefix string) ([]T, error) {
	var items []T
	if err := c.Get(ctx, prefix, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func create[T any](ctx context.Context, c *Client, prefix string, v T) error {
	return c.Post(ctx, prefix, v, nil)
}

func update[T any](ctx context.Context, c *Client, prefix, id string, v T) error {
	return c.Put(ctx, itemPath(prefix, id), v, nil)
}

func remove(ctx context.Context, c *Client, prefix, id string) error {
	return c.Delete(ctx, itemPath(prefix, id))
}

// checkNumber asks whether a business number is still free. The backend
// answers 200 when it is and 201 when it is taken.
func checkNumber(ctx context.Context, c *Client, prefix, number string) error {
	return c.Get(ctx, prefix+"/check/"+url.PathEscape(number), nil)
}

// Filter narrows a report query to one party and an inclusive date range
// (YYYY-MM-DD).
type Filter struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

func filter[T any](ctx context.Context, c *Client, prefix string, f Filter) ([]T, error) {
	var items []T
	if err := c.Post(ctx, prefix+"/filter", f, &items); err != nil {
		return nil, err
	}
	return items, nil
}
