package domain

import "time"

type Role string

const (
	RoleGeneral Role = "GENERAL"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGeneral, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Employee struct {
	Code      string
	Name      string
	Role      Role
	DeleteFlg bool      `db:"delete_flg"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Principal is the authenticated identity behind a request.
type Principal struct {
	EmployeeCode string
	Name         string
	Role         Role
}

func PrincipalOf(e Employee) Principal {
	return Principal{
		EmployeeCode: e.Code,
		Name:         e.Name,
		Role:         e.Role,
	}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether p may read or change a report owned by employeeCode.
func (p Principal) CanAccess(employeeCode string) bool {
	return p.IsAdmin() || p.EmployeeCode == employeeCode
}
