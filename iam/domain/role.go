package domain

import "errors"

// ErrUnknownIdentity means the authenticated email matches none of the role
// collections. The request is authenticated but not provisioned.
var ErrUnknownIdentity = errors.New("no role provisioned for identity")

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAttendant Role = "attendant"
	RoleClient    Role = "client"
)

// Identity is the resolved caller: firebase uid plus the provisioned role.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
