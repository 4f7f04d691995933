package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/freightdesk/internal/model"
)

// Backend is the part of the REST API the approval workflow drives.
// *api.Client satisfies it.
type Backend interface {
	Inbox(ctx context.Context, s model.Session) ([]model.Notification, error)
	CreateNotification(ctx context.Context, n model.Notification) error
	DeleteNotification(ctx context.Context, id string) error
	UpdateByNotification(ctx context.Context, e model.EntityType, requestID string, fields map[string]any) error
	DeleteByNotification(ctx context.Context, e model.EntityType, requestID string) error
}

// Mode is how a notification is resolved in the inbox.
type Mode int

const (
	// ModeAck offers a single Noted button.
	ModeAck Mode = iota
	// ModeApproval offers Approve and Decline.
	ModeApproval
)

// ErrNotApprovable is returned when approve or decline is attempted on a
// notification that only accepts an acknowledgement.
var ErrNotApprovable = errors.New("notification does not take approval")

// Decision is a notification together with how it should be presented.
type Decision struct {
	Notification model.Notification
	Kind         Kind
	Title        string
	Description  string
	Mode         Mode
	ShowNoted    bool

	// Known is false when the kind fell back to the generic entry.
	Known bool
}

// Workflow resolves inbox notifications for one session.
type Workflow struct {
	backend Backend
	table   Table
	session model.Session
	logger  *zap.Logger
	now     func() time.Time
}

// NewWorkflow creates a workflow using the default dispatch table.
func NewWorkflow(b Backend, s model.Session, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		backend: b,
		table:   DefaultTable(),
		session: s,
		logger:  logger,
		now:     time.Now,
	}
}

// Session returns the identity the workflow acts as.
func (w *Workflow) Session() model.Session { return w.session }

// Resolve decides how n is presented. Unknown kinds are never dropped:
// they render as a generic acknowledgement and a warning is logged.
func (w *Workflow) Resolve(n model.Notification) Decision {
	entry, ok := w.table.Lookup(n)
	if !ok {
		w.logger.Warn("no dispatch entry for notification",
			zap.String("id", n.ID),
			zap.String("kind", KindOf(n).String()),
		)
		entry = fallbackEntry
	}

	d := Decision{
		Notification: n,
		Kind:         KindOf(n),
		Title:        entry.Title(n),
		Mode:         ModeAck,
		ShowNoted:    entry.ShowNoted,
		Known:        ok,
	}

	switch {
	case n.ActionType.IsTerminal() || !entry.RequiresApproval || entry.Approve == nil:
		d.ShowNoted = true
	default:
		d.Mode = ModeApproval
		if entry.Description != nil {
			d.Description = entry.Description(n)
		}
	}
	return d
}

// Load fetches the session's inbox and resolves every notification.
func (w *Workflow) Load(ctx context.Context) ([]Decision, error) {
	ns, err := w.backend.Inbox(ctx, w.session)
	if err != nil {
		return nil, fmt.Errorf("loading inbox: %w", err)
	}
	decisions := make([]Decision, 0, len(ns))
	for _, n := range ns {
		decisions = append(decisions, w.Resolve(n))
	}
	return decisions, nil
}

// Approve performs the requested mutation and then deletes the
// notification. If the mutation fails the notification is left in place.
func (w *Workflow) Approve(ctx context.Context, n model.Notification) error {
	entry, ok := w.table.Lookup(n)
	if !ok || n.ActionType.IsTerminal() || !entry.RequiresApproval || entry.Approve == nil {
		return fmt.Errorf("approving %s: %w", KindOf(n), ErrNotApprovable)
	}

	if err := entry.Approve(ctx, w.backend, n); err != nil {
		return fmt.Errorf("approving %s %s: %w", KindOf(n), n.RequestID, err)
	}
	w.logger.Info("request approved",
		zap.String("id", n.ID),
		zap.String("kind", KindOf(n).String()),
		zap.String("request_id", n.RequestID),
	)

	if err := w.backend.DeleteNotification(ctx, n.ID); err != nil {
		return fmt.Errorf("deleting notification %s: %w", n.ID, err)
	}
	return nil
}

// Decline tells the requester their request was refused and deletes the
// original notification.
func (w *Workflow) Decline(ctx context.Context, n model.Notification) error {
	entry, ok := w.table.Lookup(n)
	if !ok || n.ActionType.IsTerminal() || !entry.RequiresApproval {
		return fmt.Errorf("declining %s: %w", KindOf(n), ErrNotApprovable)
	}

	reply := model.Notification{
		EntityType:    n.EntityType,
		ActionType:    model.ActionDecline,
		RequestID:     n.RequestID,
		CreatedByRole: w.session.Role.String(),
		CreatedByID:   w.session.ID,
		ToRole:        n.CreatedByRole,
		ToID:          n.CreatedByID,
		CreatedAt:     w.now(),
		Status:        model.StatusDeclined,
	}
	if err := w.backend.CreateNotification(ctx, reply); err != nil {
		return fmt.Errorf("notifying requester of decline: %w", err)
	}
	w.logger.Info("request declined",
		zap.String("id", n.ID),
		zap.String("kind", KindOf(n).String()),
		zap.String("to_id", n.CreatedByID),
	)

	if err := w.backend.DeleteNotification(ctx, n.ID); err != nil {
		return fmt.Errorf("deleting notification %s: %w", n.ID, err)
	}
	return nil
}

// Acknowledge deletes the notification unconditionally.
func (w *Workflow) Acknowledge(ctx context.Context, n model.Notification) error {
	if err := w.backend.DeleteNotification(ctx, n.ID); err != nil {
		return fmt.Errorf("deleting notification %s: %w", n.ID, err)
	}
	return nil
}

// RequestDelete asks the admin to delete the entity with the given
// business key.
func (w *Workflow) RequestDelete(ctx context.Context, e model.EntityType, requestID string) error {
	n := w.request(e, model.ActionDelete, requestID)
	n.Status = model.StatusDelete
	if err := w.backend.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("requesting delete of %s %s: %w", e, requestID, err)
	}
	return nil
}

// RequestEdit asks the admin to apply the differences between before and
// after to the entity with the given business key.
func (w *Workflow) RequestEdit(ctx context.Context, e model.EntityType, requestID string, before, after any) error {
	data, err := BuildChanges(before, after)
	if err != nil {
		return fmt.Errorf("requesting edit of %s %s: %w", e, requestID, err)
	}

	n := w.request(e, model.ActionEdit, requestID)
	n.Status = model.StatusEditable
	n.Data = data
	if err := w.backend.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("requesting edit of %s %s: %w", e, requestID, err)
	}
	return nil
}

func (w *Workflow) request(e model.EntityType, a model.ActionType, requestID string) model.Notification {
	return model.Notification{
		EntityType:    e,
		ActionType:    a,
		RequestID:     requestID,
		CreatedByRole: w.session.Role.String(),
		CreatedByID:   w.session.ID,
		ToRole:        model.RoleNameAdmin,
		CreatedAt:     w.now(),
	}
}
