package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/freightdesk/internal/model"
)

const pathNotifications = "/notifications"

// AdminNotifications returns the admin inbox.
func (c *Client) AdminNotifications(ctx context.Context) ([]model.Notification, error) {
	return list[model.Notification](ctx, c, "/admin/notifications")
}

// BranchNotifications returns the inbox of one branch.
func (c *Client) BranchNotifications(ctx context.Context, branchID string) ([]model.Notification, error) {
	return list[model.Notification](ctx, c, "/branch/"+url.PathEscape(branchID)+"/notifications")
}

// Inbox returns the notifications addressed to the session's audience.
func (c *Client) Inbox(ctx context.Context, s model.Session) ([]model.Notification, error) {
	if s.IsAdmin() {
		return c.AdminNotifications(ctx)
	}
	return c.BranchNotifications(ctx, s.BranchID)
}

// CreateNotification posts a new notification.
func (c *Client) CreateNotification(ctx context.Context, n model.Notification) error {
	return create(ctx, c, pathNotifications, n)
}

// DeleteNotification removes a resolved notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return remove(ctx, c, pathNotifications, id)
}

// UpdateByNotification applies an approved edit to the entity identified by
// its business key.
func (c *Client) UpdateByNotification(ctx context.Context, e model.EntityType, requestID string, fields map[string]any) error {
	prefix, err := EntityPath(e)
	if err != nil {
		return err
	}
	return c.Put(ctx, prefix+"/by-notification/"+url.PathEscape(requestID), fields, nil)
}

type requestRef struct {
	ID string `json:"id"`
}

// DeleteByNotification deletes the entity identified by its business key
// after an approved delete request.
func (c *Client) DeleteByNotification(ctx context.Context, e model.EntityType, requestID string) error {
	prefix, err := EntityPath(e)
	if err != nil {
		return err
	}
	if requestID == "" {
		return fmt.Errorf("delete %s by notification: empty request id", e)
	}
	return c.Post(ctx, prefix+"/delete-by-notification", requestRef{ID: requestID}, nil)
}
