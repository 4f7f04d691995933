package approval

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/freightdesk/internal/model"
)

// Kind identifies one (entity, action) combination a notification can carry.
type Kind struct {
	Entity model.EntityType
	Action model.ActionType
}

// KindOf returns the kind of a notification.
func KindOf(n model.Notification) Kind {
	return Kind{Entity: n.EntityType, Action: n.ActionType}
}

func (k Kind) String() string {
	return fmt.Sprintf("%s:%s", k.Entity, k.Action)
}

// ApproveFunc performs the mutation an approved request asks for.
type ApproveFunc func(ctx context.Context, b Backend, n model.Notification) error

// Entry configures how one kind of notification is presented and resolved.
type Entry struct {
	// Title is the one-line summary shown in the inbox.
	Title func(n model.Notification) string

	// Description is shown in the detail dialog of edit and delete
	// approvals. Nil for every other kind.
	Description func(n model.Notification) string

	// RequiresApproval selects the approve/decline pair over a single
	// acknowledgement. Ignored for terminal actions.
	RequiresApproval bool

	// ShowNoted adds the acknowledge button.
	ShowNoted bool

	// Approve is set only when RequiresApproval is.
	Approve ApproveFunc
}

// Table maps every known kind to its entry.
type Table map[Kind]Entry

// Lookup returns the entry for n and whether the kind is known.
func (t Table) Lookup(n model.Notification) (Entry, bool) {
	e, ok := t[KindOf(n)]
	return e, ok
}

// DefaultTable returns the entries for every entity and action the backend
// raises.
func DefaultTable() Table {
	t := make(Table, len(model.EntityTypes)*len(model.ActionTypes))
	for _, entity := range model.EntityTypes {
		t[Kind{entity, model.ActionEdit}] = Entry{
			Title:            editTitle,
			Description:      editDescription,
			RequiresApproval: true,
			Approve:          approveEdit,
		}
		t[Kind{entity, model.ActionDelete}] = Entry{
			Title:            deleteTitle,
			Description:      deleteDescription,
			RequiresApproval: true,
			Approve:          approveDelete,
		}
		t[Kind{entity, model.ActionInfo}] = Entry{Title: infoTitle, ShowNoted: true}
		t[Kind{entity, model.ActionDecline}] = Entry{Title: declineTitle, ShowNoted: true}
		t[Kind{entity, model.ActionApproved}] = Entry{Title: approvedTitle, ShowNoted: true}
	}
	return t
}

// fallbackEntry renders kinds the table does not know as plain messages.
var fallbackEntry = Entry{Title: genericTitle, ShowNoted: true}

func requester(n model.Notification) string {
	switch {
	case n.CreatedByRole == model.RoleNameAdmin:
		return "admin"
	case n.CreatedByID != "":
		return "branch " + n.CreatedByID
	default:
		return "unknown"
	}
}

func editTitle(n model.Notification) string {
	return fmt.Sprintf("%s %s: edit requested by %s", n.EntityType, n.RequestID, requester(n))
}

func deleteTitle(n model.Notification) string {
	return fmt.Sprintf("%s %s: delete requested by %s", n.EntityType, n.RequestID, requester(n))
}

func infoTitle(n model.Notification) string {
	return fmt.Sprintf("%s %s: %s", n.EntityType, n.RequestID, orDefault(n.Status, "update"))
}

func declineTitle(n model.Notification) string {
	return fmt.Sprintf("Your request on %s %s was declined", n.EntityType, n.RequestID)
}

func approvedTitle(n model.Notification) string {
	return fmt.Sprintf("Your request on %s %s was approved", n.EntityType, n.RequestID)
}

func genericTitle(n model.Notification) string {
	return fmt.Sprintf("%s %s (%s)", n.EntityType, n.RequestID, n.ActionType)
}

func editDescription(n model.Notification) string {
	changes, err := n.Changes()
	if err != nil {
		return "The proposed changes could not be read."
	}
	if len(changes) == 0 {
		return "No field changes were attached."
	}

	var b strings.Builder
	for _, field := range sortedKeys(changes) {
		c := changes[field]
		fmt.Fprintf(&b, "%s: %s -> %s\n", field, display(c.Old), display(c.New))
	}
	return strings.TrimRight(b.String(), "\n")
}

func deleteDescription(n model.Notification) string {
	return fmt.Sprintf("Approving permanently deletes %s %s.", n.EntityType, n.RequestID)
}

func display(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func approveEdit(ctx context.Context, b Backend, n model.Notification) error {
	changes, err := n.Changes()
	if err != nil {
		return err
	}
	fields := FlattenChanges(changes)
	if len(fields) == 0 {
		return fmt.Errorf("approving %s: no applicable field changes", KindOf(n))
	}
	return b.UpdateByNotification(ctx, n.EntityType, n.RequestID, fields)
}

func approveDelete(ctx context.Context, b Backend, n model.Notification) error {
	return b.DeleteByNotification(ctx, n.EntityType, n.RequestID)
}
