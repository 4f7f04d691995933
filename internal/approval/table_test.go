package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/freightdesk/internal/model"
)

func TestDefaultTable_CoversEveryKind(t *testing.T) {
	table := DefaultTable()
	for _, e := range model.EntityTypes {
		for _, a := range model.ActionTypes {
			k := Kind{Entity: e, Action: a}
			entry, ok := table[k]
			require.True(t, ok, "missing entry for %s", k)
			require.NotNil(t, entry.Title, "entry %s has no title", k)
			if entry.RequiresApproval {
				assert.NotNil(t, entry.Approve, "entry %s requires approval but has no handler", k)
			}
		}
	}
}

func TestDefaultTable_TerminalKindsAreAckOnly(t *testing.T) {
	table := DefaultTable()
	for _, e := range model.EntityTypes {
		for _, a := range []model.ActionType{model.ActionInfo, model.ActionDecline, model.ActionApproved} {
			entry := table[Kind{Entity: e, Action: a}]
			assert.False(t, entry.RequiresApproval)
			assert.True(t, entry.ShowNoted)
		}
	}
}

func TestEditDescription_ListsChanges(t *testing.T) {
	n := model.Notification{
		EntityType: model.EntityLR,
		ActionType: model.ActionEdit,
		RequestID:  "LR-7",
		Data:       []byte(`{"to":{"obj1":"Pune","obj2":"Nashik"},"packages":{"obj1":12,"obj2":10}}`),
	}
	assert.Equal(t, "packages: 10 -> 12\nto: Nashik -> Pune", editDescription(n))
}

func TestRequester(t *testing.T) {
	assert.Equal(t, "admin", requester(model.Notification{CreatedByRole: "admin"}))
	assert.Equal(t, "branch b2", requester(model.Notification{CreatedByRole: "branch", CreatedByID: "b2"}))
	assert.Equal(t, "unknown", requester(model.Notification{}))
}
