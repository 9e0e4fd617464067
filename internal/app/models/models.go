package models

// Role defines the user role type
type Role string

const (
	RoleStudent      Role = "student"
	RoleTeacher      Role = "teacher"
	RoleAcademyOwner Role = "academy_owner"
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "super_admin"
)

// SelectableRoles are the roles a user may pick for themselves after signup.
// Admin roles are only ever granted server-side.
var SelectableRoles = []Role{RoleStudent, RoleTeacher, RoleAcademyOwner}

// IsSelectable reports whether a user may self-assign this role
func (r Role) IsSelectable() bool {
	for _, role := range SelectableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries platform admin privilege
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ApprovalStatus is the shared pending/approved/rejected lifecycle applied to
// photos and academy skill requests. Resolutions may overwrite one another;
// there is no resubmission transition back to pending.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is a known approval status
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// AcademyStatus is the admin-controlled academy lifecycle. Transitions are a
// direct admin override; any direction is allowed, including back to pending.
type AcademyStatus string

const (
	AcademyStatusPending   AcademyStatus = "pending"
	AcademyStatusActive    AcademyStatus = "active"
	AcademyStatusSuspended AcademyStatus = "suspended"
)

// Valid reports whether s is a known academy status
func (s AcademyStatus) Valid() bool {
	switch s {
	case AcademyStatusPending, AcademyStatusActive, AcademyStatusSuspended:
		return true
	}
	return false
}

// AdminStatus is the admin account lifecycle
type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "active"
	AdminStatusSuspended AdminStatus = "suspended"
)

// Valid reports whether s is a known admin status
func (s AdminStatus) Valid() bool {
	return s == AdminStatusActive || s == AdminStatusSuspended
}

// BatchStatus is the batch lifecycle
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusCancelled BatchStatus = "cancelled"
)
