// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/session"
	"github.com/nhle/freightdesk/internal/store"
)

// NewTestStore opens a migrated in-memory store that is closed when the
// test ends.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err, "opening in-memory store")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SignedIn returns a store that already holds sess, as if the user had
// completed setup on a previous run.
func SignedIn(t *testing.T, sess model.Session) *store.SQLiteStore {
	t.Helper()

	s := NewTestStore(t)
	require.NoError(t, session.Save(context.Background(), s, sess))
	return s
}
