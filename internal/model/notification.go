package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Notification status markers written by the client. The backend treats
// status as free text, so unknown values are passed through untouched.
const (
	StatusEditable = "editable"
	StatusDelete   = "delete"
	StatusRead     = "read"
	StatusDeclined = "declined"
)

// Notification is a pending cross-role request or an informational
// message sitting in exactly one inbox (the admin's or one branch's).
type Notification struct {
	// ID is the backend identifier of the notification.
	ID string `json:"id"`

	// EntityType is the domain noun the request is about.
	EntityType EntityType `json:"entityType"`

	// ActionType is what the creator asked for.
	ActionType ActionType `json:"actionType"`

	// RequestID is the business key of the target entity (e.g. an LR number).
	RequestID string `json:"requestId"`

	// CreatedByRole and CreatedByID identify the requester.
	CreatedByRole string `json:"createdByRole"`
	CreatedByID   string `json:"createdById"`

	// ToRole and ToID address the inbox the notification belongs to.
	ToRole string `json:"toRole,omitempty"`
	ToID   string `json:"toId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// Data is the optional payload: a field diff for edits, a flat
	// record for everything else.
	Data json.RawMessage `json:"data,omitempty"`

	// Status is a free-text lifecycle marker set by the creator.
	Status string `json:"status"`
}

// FieldChange is one entry of an edit diff. The backend's wire names are
// obj1 for the proposed value and obj2 for the current one.
type FieldChange struct {
	New any `json:"obj1"`
	Old any `json:"obj2"`
}

// Changes decodes Data as an edit diff. Numbers are kept as json.Number
// so that values round-trip to the update API without float rounding.
func (n Notification) Changes() (map[string]FieldChange, error) {
	changes := make(map[string]FieldChange)
	if len(n.Data) == 0 || bytes.Equal(n.Data, []byte("null")) {
		return changes, nil
	}

	dec := json.NewDecoder(bytes.NewReader(n.Data))
	dec.UseNumber()
	if err := dec.Decode(&changes); err != nil {
		return nil, fmt.Errorf("decoding changes of notification %s: %w", n.ID, err)
	}
	return changes, nil
}

// Fields decodes Data as a flat record.
func (n Notification) Fields() (map[string]any, error) {
	fields := make(map[string]any)
	if len(n.Data) == 0 || bytes.Equal(n.Data, []byte("null")) {
		return fields, nil
	}

	dec := json.NewDecoder(bytes.NewReader(n.Data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decoding data of notification %s: %w", n.ID, err)
	}
	return fields, nil
}
