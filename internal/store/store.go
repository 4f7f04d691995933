package store

import (
	"context"
	"errors"

	"github.com/nhle/freightdesk/internal/model"
)

// ErrNotFound is returned when a setting or export does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the local persistence used by the client. Business data
// never lives here; only client-side settings and the export history.
type Store interface {
	// === Settings ===

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSettings(ctx context.Context, keys ...string) error

	// === Export history ===

	RecordExport(ctx context.Context, rec model.ExportRecord) error
	ListExports(ctx context.Context, limit int) ([]model.ExportRecord, error)
	GetExport(ctx context.Context, id string) (*model.ExportRecord, error)
	DeleteExport(ctx context.Context, id string) error
}
