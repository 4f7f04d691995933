package model

import "fmt"

// Role is the kind of user operating the client.
type Role int

const (
	RoleBranch Role = iota
	RoleAdmin
)

// Wire names used for createdByRole / toRole.
const (
	RoleNameAdmin  = "admin"
	RoleNameBranch = "branch"
)

// String returns the backend name of the role.
func (r Role) String() string {
	if r == RoleAdmin {
		return RoleNameAdmin
	}
	return RoleNameBranch
}

// Session is the identity the client acts as. Branch sessions carry the
// branch they belong to; admin sessions leave the branch fields empty.
type Session struct {
	Role       Role
	ID         string
	BranchID   string
	BranchName string
}

// AdminSession returns a session for the admin user with the given id.
func AdminSession(id string) Session {
	if id == "" {
		id = RoleNameAdmin
	}
	return Session{Role: RoleAdmin, ID: id}
}

// BranchSession returns a session scoped to a single branch.
func BranchSession(branchID, branchName string) Session {
	return Session{
		Role:       RoleBranch,
		ID:         branchID,
		BranchID:   branchID,
		BranchName: branchName,
	}
}

// IsAdmin reports whether the session has admin rights.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Label is a short human-readable description for the header bar.
func (s Session) Label() string {
	if s.IsAdmin() {
		return "Admin"
	}
	return fmt.Sprintf("Branch: %s", s.BranchName)
}
