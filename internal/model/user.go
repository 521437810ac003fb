package model

// User represents an account row in the `users` table. The primary key
// is the opaque string `uid`; every other table in the schema that
// belongs to a user references this column and no other. Role and
// Status are constrained by CHECK clauses in the DDL, so the constants
// below must stay in sync with the schema. Mobile and AvatarURL are
// optional; timestamps are stored as UTC strings in the store's
// datetime format.
type User struct {
	UID          string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Mobile       string `json:"mobile,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Role values stored in users.role.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Account status values stored in users.status.
const (
	UserActive    = "active"
	UserPending   = "pending"
	UserSuspended = "suspended"
)

// ValidRole reports whether r is one of the roles the schema accepts.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleOwner || r == RoleAdmin
}

// ValidUserStatus reports whether s is a status the schema accepts.
func ValidUserStatus(s string) bool {
	return s == UserActive || s == UserPending || s == UserSuspended
}
