package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
)

type fakeBackend struct {
	inbox     []model.Notification
	created   []model.Notification
	deleted   []string
	updated   map[string]map[string]any
	removed   []string
	failWith  error
	failOnDel error
}

func (f *fakeBackend) Inbox(context.Context, model.Session) ([]model.Notification, error) {
	return f.inbox, f.failWith
}

func (f *fakeBackend) CreateNotification(_ context.Context, n model.Notification) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeBackend) DeleteNotification(_ context.Context, id string) error {
	if f.failOnDel != nil {
		return f.failOnDel
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) UpdateByNotification(_ context.Context, e model.EntityType, requestID string, fields map[string]any) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.updated == nil {
		f.updated = make(map[string]map[string]any)
	}
	f.updated[string(e)+"/"+requestID] = fields
	return nil
}

func (f *fakeBackend) DeleteByNotification(_ context.Context, e model.EntityType, requestID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.removed = append(f.removed, string(e)+"/"+requestID)
	return nil
}

func newTestWorkflow(b Backend, s model.Session) *Workflow {
	w := NewWorkflow(b, s, nil)
	w.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return w
}

func TestResolve_Modes(t *testing.T) {
	w := newTestWorkflow(&fakeBackend{}, model.AdminSession(""))

	edit := w.Resolve(model.Notification{EntityType: model.EntityFM, ActionType: model.ActionEdit, RequestID: "FM-1"})
	assert.Equal(t, ModeApproval, edit.Mode)
	assert.True(t, edit.Known)
	assert.NotEmpty(t, edit.Description)

	info := w.Resolve(model.Notification{EntityType: model.EntityBill, ActionType: model.ActionInfo, RequestID: "B-1"})
	assert.Equal(t, ModeAck, info.Mode)
	assert.True(t, info.ShowNoted)
	assert.Empty(t, info.Description)
}

func TestResolve_TerminalActionOverridesEntry(t *testing.T) {
	w := newTestWorkflow(&fakeBackend{}, model.AdminSession(""))
	k := Kind{Entity: model.EntityLR, Action: model.ActionApproved}
	w.table[k] = Entry{Title: approvedTitle, RequiresApproval: true, Approve: approveDelete}

	d := w.Resolve(model.Notification{EntityType: model.EntityLR, ActionType: model.ActionApproved})
	assert.Equal(t, ModeAck, d.Mode)
	assert.True(t, d.ShowNoted)
}

func TestResolve_UnknownKindFallsBack(t *testing.T) {
	w := newTestWorkflow(&fakeBackend{}, model.AdminSession(""))

	d := w.Resolve(model.Notification{EntityType: "Truck", ActionType: "transfer", RequestID: "MH12"})
	assert.False(t, d.Known)
	assert.Equal(t, ModeAck, d.Mode)
	assert.True(t, d.ShowNoted)
	assert.Equal(t, "Truck MH12 (transfer)", d.Title)
}

func TestLoad(t *testing.T) {
	b := &fakeBackend{inbox: []model.Notification{
		{ID: "n1", EntityType: model.EntityLR, ActionType: model.ActionDelete, RequestID: "LR-001"},
		{ID: "n2", EntityType: model.EntityPOD, ActionType: model.ActionInfo, RequestID: "LR-002"},
	}}
	w := newTestWorkflow(b, model.AdminSession(""))

	ds, err := w.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, ModeApproval, ds[0].Mode)
	assert.Equal(t, ModeAck, ds[1].Mode)
}

func TestApprove_EditSendsFlattenedFields(t *testing.T) {
	b := &fakeBackend{}
	w := newTestWorkflow(b, model.AdminSession(""))

	n := model.Notification{
		ID:         "n9",
		EntityType: model.EntityExpense,
		ActionType: model.ActionEdit,
		RequestID:  "EXP-4",
		Data:       []byte(`{"amount":{"obj1":"450","obj2":"400"},"meta":{"obj1":{"a":1},"obj2":null}}`),
	}
	require.NoError(t, w.Approve(context.Background(), n))

	assert.Equal(t, map[string]any{"amount": "450"}, b.updated["Expense/EXP-4"])
	assert.Equal(t, []string{"n9"}, b.deleted)
}

func TestApprove_FailureKeepsNotification(t *testing.T) {
	b := &fakeBackend{failWith: errors.New("boom")}
	w := newTestWorkflow(b, model.AdminSession(""))

	err := w.Approve(context.Background(), model.Notification{
		ID: "n1", EntityType: model.EntityLR, ActionType: model.ActionDelete, RequestID: "LR-001",
	})
	require.Error(t, err)
	assert.Empty(t, b.deleted)
}

func TestApprove_RejectsAckOnly(t *testing.T) {
	b := &fakeBackend{}
	w := newTestWorkflow(b, model.AdminSession(""))

	err := w.Approve(context.Background(), model.Notification{ID: "n1", EntityType: model.EntityLR, ActionType: model.ActionInfo})
	assert.ErrorIs(t, err, ErrNotApprovable)
	assert.Empty(t, b.deleted)
}

func TestDecline_NotifiesRequesterOnce(t *testing.T) {
	b := &fakeBackend{}
	w := newTestWorkflow(b, model.AdminSession("root"))

	n := model.Notification{
		ID:            "n3",
		EntityType:    model.EntityBillRecord,
		ActionType:    model.ActionDelete,
		RequestID:     "BR-11",
		CreatedByRole: model.RoleNameBranch,
		CreatedByID:   "b4",
	}
	require.NoError(t, w.Decline(context.Background(), n))

	require.Len(t, b.created, 1)
	reply := b.created[0]
	assert.Equal(t, model.EntityBillRecord, reply.EntityType)
	assert.Equal(t, model.ActionDecline, reply.ActionType)
	assert.Equal(t, "BR-11", reply.RequestID)
	assert.Equal(t, model.StatusDeclined, reply.Status)
	assert.Equal(t, model.RoleNameBranch, reply.ToRole)
	assert.Equal(t, "b4", reply.ToID)
	assert.Equal(t, model.RoleNameAdmin, reply.CreatedByRole)
	assert.Equal(t, "root", reply.CreatedByID)
	assert.Equal(t, []string{"n3"}, b.deleted)
}

func TestDecline_CreateFailureKeepsOriginal(t *testing.T) {
	b := &fakeBackend{failWith: errors.New("down")}
	w := newTestWorkflow(b, model.AdminSession(""))

	err := w.Decline(context.Background(), model.Notification{ID: "n3", EntityType: model.EntityFM, ActionType: model.ActionEdit})
	require.Error(t, err)
	assert.Empty(t, b.deleted)
}

func TestAcknowledge(t *testing.T) {
	b := &fakeBackend{}
	w := newTestWorkflow(b, model.BranchSession("b1", "Pune"))

	require.NoError(t, w.Acknowledge(context.Background(), model.Notification{ID: "n5"}))
	assert.Equal(t, []string{"n5"}, b.deleted)

	b.failOnDel = errors.New("gone")
	assert.Error(t, w.Acknowledge(context.Background(), model.Notification{ID: "n6"}))
}

func TestRequestDelete(t *testing.T) {
	b := &fakeBackend{}
	w := newTestWorkflow(b, model.BranchSession("b1", "Pune"))

	require.NoError(t, w.RequestDelete(context.Background(), model.EntityLR, "LR-5"))
	require.Len(t, b.created, 1)
	n := b.created[0]
	assert.Equal(t, model.ActionDelete, n.ActionType)
	assert.Equal(t, model.StatusDelete, n.Status)
	assert.Equal(t, model.RoleNameBranch, n.CreatedByRole)
	assert.Equal(t, "b1", n.CreatedByID)
	assert.Equal(t, model.RoleNameAdmin, n.ToRole)
}

func TestRequestEdit_RoundTripsThroughApprove(t *testing.T) {
	b := &fakeBackend{}
	branch := newTestWorkflow(b, model.BranchSession("b1", "Pune"))

	before := model.POD{ID: "p1", LRNumber: "LR-5", ReceivedBy: "Ravi"}
	after := before
	after.ReceivedBy = "Sunil"
	require.NoError(t, branch.RequestEdit(context.Background(), model.EntityPOD, "LR-5", before, after))
	require.Len(t, b.created, 1)

	n := b.created[0]
	n.ID = "n7"
	admin := newTestWorkflow(b, model.AdminSession(""))
	require.NoError(t, admin.Approve(context.Background(), n))
	assert.Equal(t, map[string]any{"receivedBy": "Sunil"}, b.updated["POD/LR-5"])
}
