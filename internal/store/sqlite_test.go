package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/store"
	"github.com/nhle/freightdesk/tests/testutil"
)

func TestSettings(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetSetting(ctx, "isAdmin")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetSetting(ctx, "isAdmin", "true"))
	require.NoError(t, s.SetSetting(ctx, "id", "a1"))
	require.NoError(t, s.SetSetting(ctx, "id", "a2"))

	v, err := s.GetSetting(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, "a2", v)

	require.NoError(t, s.DeleteSettings(ctx, "isAdmin", "id", "missing"))
	_, err = s.GetSetting(ctx, "id")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, s.DeleteSettings(ctx))
}

func TestExports(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, kind := range []string{"client-bills", "vendor-fms", "branch-expenses"} {
		require.NoError(t, s.RecordExport(ctx, model.ExportRecord{
			ID:         "01HZ" + kind,
			Kind:       kind,
			EntityName: "Acme",
			FromDate:   "2024-05-01",
			ToDate:     "2024-05-31",
			Rows:       i + 1,
			Path:       "/tmp/" + kind + ".xlsx",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := s.ListExports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "branch-expenses", all[0].Kind)
	assert.Equal(t, 3, all[0].Rows)

	latest, err := s.ListExports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)

	got, err := s.GetExport(ctx, "01HZvendor-fms")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vendor-fms.xlsx", got.Path)
	assert.True(t, got.CreatedAt.Equal(base.Add(time.Minute)))

	require.NoError(t, s.DeleteExport(ctx, "01HZvendor-fms"))
	_, err = s.GetExport(ctx, "01HZvendor-fms")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteExport(ctx, "01HZvendor-fms"), store.ErrNotFound)
}

func TestRecordExport_RequiresID(t *testing.T) {
	s := testutil.NewTestStore(t)
	assert.Error(t, s.RecordExport(context.Background(), model.ExportRecord{Kind: "x"}))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := t.TempDir() + "/fd.db"

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetSetting(context.Background(), "branchName", "Pune"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.GetSetting(context.Background(), "branchName")
	require.NoError(t, err)
	assert.Equal(t, "Pune", v)
}
