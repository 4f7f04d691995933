package model

// EntityType names the domain noun a notification refers to.
type EntityType string

const (
	EntityLR         EntityType = "LR"
	EntityFM         EntityType = "FM"
	EntityBill       EntityType = "Bill"
	EntityPOD        EntityType = "POD"
	EntityCredit     EntityType = "Credit"
	EntityExpense    EntityType = "Expense"
	EntityBillRecord EntityType = "Bill record"
	EntityFMRecord   EntityType = "FM record"
)

// EntityTypes lists every entity the backend raises notifications for.
var EntityTypes = []EntityType{
	EntityLR,
	EntityFM,
	EntityBill,
	EntityPOD,
	EntityCredit,
	EntityExpense,
	EntityBillRecord,
	EntityFMRecord,
}

// ActionType is the kind of request a notification carries.
type ActionType string

const (
	ActionEdit     ActionType = "edit"
	ActionDelete   ActionType = "delete"
	ActionInfo     ActionType = "info"
	ActionDecline  ActionType = "decline"
	ActionApproved ActionType = "approved"
)

// ActionTypes lists every action kind in the order they are documented.
var ActionTypes = []ActionType{
	ActionEdit,
	ActionDelete,
	ActionInfo,
	ActionDecline,
	ActionApproved,
}

// IsTerminal reports whether the action only ever needs an acknowledgement.
func (a ActionType) IsTerminal() bool {
	switch a {
	case ActionInfo, ActionDecline, ActionApproved:
		return true
	}
	return false
}
