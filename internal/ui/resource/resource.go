// Package resource implements the list/form/confirm screen shared by every
// entity the client manages. Each entity plugs in through a Spec.
package resource

import (
	"context"
	"errors"

	"github.com/nhle/freightdesk/internal/model"
)

// Column is one column of the list table.
type Column struct {
	Title string
	Width int
}

// Field is one input of the create/edit form.
type Field struct {
	Key         string
	Title       string
	Placeholder string
	Required    bool

	// Options turns the field into a select.
	Options []string

	// Validate runs after the required check.
	Validate func(string) error

	// Immutable fields are shown but not editable once created.
	Immutable bool
}

// Row is a fetched record in display form.
type Row struct {
	ID    string
	Key   string
	Cells []string
	Raw   any

	// RequestID names the row in approval requests. It is the business
	// number when the entity has a unique one and the record id otherwise.
	RequestID string
}

// Resource is what the screen needs from an entity.
type Resource interface {
	Name() string
	Plural() string

	// Entity is the notification entity type used when a branch user's
	// change needs admin approval. Empty when changes are never gated.
	Entity() model.EntityType

	Columns() []Column
	Fields() []Field

	Load(ctx context.Context) ([]Row, error)
	Values(r Row) map[string]string
	Create(ctx context.Context, values map[string]string) error
	Update(ctx context.Context, r Row, values map[string]string) error
	Delete(ctx context.Context, r Row) error

	// Proposed returns the current and edited records for an edit request.
	Proposed(r Row, values map[string]string) (before, after any, err error)
}

// Requester routes branch changes through admin approval.
// *approval.Workflow satisfies it.
type Requester interface {
	RequestDelete(ctx context.Context, e model.EntityType, requestID string) error
	RequestEdit(ctx context.Context, e model.EntityType, requestID string, before, after any) error
}

// Spec describes an entity of type T. Spec implements Resource.
type Spec[T any] struct {
	Singular   string
	PluralName string
	EntityType model.EntityType
	TableCols  []Column
	FormFields []Field
	IDOf       func(T) string
	KeyOf      func(T) string
	CellsOf    func(T) []string
	ValuesOf   func(T) map[string]string
	Decode     func(values map[string]string, base T) (T, error)
	ListFn     func(ctx context.Context) ([]T, error)
	CreateFn   func(ctx context.Context, v T) error
	UpdateFn   func(ctx context.Context, id string, v T) error
	DeleteFn   func(ctx context.Context, id string) error

	// RequestKeyOf overrides KeyOf for approval requests. Entities whose
	// display key is not unique set it to the record id.
	RequestKeyOf func(T) string

	// CheckFn, when set, is asked whether the business key is free before
	// a create. It returns api.ErrDuplicate when it is taken.
	CheckFn func(ctx context.Context, key string) error
}

var errWrongRow = errors.New("row does not belong to this resource")

func (s Spec[T]) Name() string             { return s.Singular }
func (s Spec[T]) Plural() string           { return s.PluralName }
func (s Spec[T]) Entity() model.EntityType { return s.EntityType }
func (s Spec[T]) Columns() []Column        { return s.TableCols }
func (s Spec[T]) Fields() []Field          { return s.FormFields }

func (s Spec[T]) Load(ctx context.Context) ([]Row, error) {
	items, err := s.ListFn(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, s.row(it))
	}
	return rows, nil
}

func (s Spec[T]) row(v T) Row {
	r := Row{ID: s.IDOf(v), Cells: s.CellsOf(v), Raw: v}
	if s.KeyOf != nil {
		r.Key = s.KeyOf(v)
	} else {
		r.Key = r.ID
	}
	r.RequestID = r.Key
	if s.RequestKeyOf != nil {
		r.RequestID = s.RequestKeyOf(v)
	}
	return r
}

func (s Spec[T]) Values(r Row) map[string]string {
	v, ok := r.Raw.(T)
	if !ok {
		return map[string]string{}
	}
	return s.ValuesOf(v)
}

func (s Spec[T]) Create(ctx context.Context, values map[string]string) error {
	var zero T
	v, err := s.Decode(values, zero)
	if err != nil {
		return err
	}
	if s.CheckFn != nil && s.KeyOf != nil {
		if err := s.CheckFn(ctx, s.KeyOf(v)); err != nil {
			return err
		}
	}
	return s.CreateFn(ctx, v)
}

func (s Spec[T]) Update(ctx context.Context, r Row, values map[string]string) error {
	base, ok := r.Raw.(T)
	if !ok {
		return errWrongRow
	}
	v, err := s.Decode(values, base)
	if err != nil {
		return err
	}
	return s.UpdateFn(ctx, r.ID, v)
}

func (s Spec[T]) Delete(ctx context.Context, r Row) error {
	return s.DeleteFn(ctx, r.ID)
}

func (s Spec[T]) Proposed(r Row, values map[string]string) (any, any, error) {
	base, ok := r.Raw.(T)
	if !ok {
		return nil, nil, errWrongRow
	}
	v, err := s.Decode(values, base)
	if err != nil {
		return nil, nil, err
	}
	return base, v, nil
}
