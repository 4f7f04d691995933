package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
	"github.com/nhle/freightdesk/internal/session"
	"github.com/nhle/freightdesk/tests/testutil"
)

func TestLoad_Empty(t *testing.T) {
	s := testutil.NewTestStore(t)
	_, err := session.Load(context.Background(), s)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSaveLoad_Admin(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, session.Save(ctx, s, model.AdminSession("root")))
	got, err := session.Load(ctx, s)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, "root", got.ID)

	v, err := s.GetSetting(ctx, session.KeyIsAdmin)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestSaveLoad_Branch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, session.Save(ctx, s, model.AdminSession("root")))
	require.NoError(t, session.Save(ctx, s, model.BranchSession("b7", "Pune")))

	got, err := session.Load(ctx, s)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin())
	assert.Equal(t, "b7", got.BranchID)
	assert.Equal(t, "Pune", got.BranchName)

	raw, err := s.GetSetting(ctx, session.KeyBranchDetails)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b7","branchName":"Pune"}`, raw)
}

func TestLoad_LegacyBranchDetailsOnly(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SetSetting(ctx, session.KeyBranchDetails, `{"id":"b2","branchName":"Nagpur"}`))

	got, err := session.Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, model.BranchSession("b2", "Nagpur"), got)
}

func TestLoad_BadBranchDetails(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SetSetting(ctx, session.KeyBranchDetails, `not json`))

	_, err := session.Load(ctx, s)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, s, model.BranchSession("b7", "Pune")))
	require.NoError(t, session.Clear(ctx, s))

	_, err := session.Load(ctx, s)
	assert.ErrorIs(t, err, session.ErrNoSession)
}
