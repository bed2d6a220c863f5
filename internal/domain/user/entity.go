package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin          Role = "admin"           // Full access to every portal
	RoleHRManager      Role = "hr_manager"      // Employee, attendance and payroll management
	RoleDepartmentHead Role = "department_head" // Reports for their department
	RoleEmployee       Role = "employee"        // Own attendance and leave
)

// ValidRoles lists the closed role set accepted at the data-access boundary.
var ValidRoles = []Role{RoleAdmin, RoleHRManager, RoleDepartmentHead, RoleEmployee}

func IsValidRole(r Role) bool {
	for _, valid := range ValidRoles {
		if r == valid {
			return true
		}
	}
	return false
}

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeRecord is the employee row joined onto a profile. Admin and
// HR users may have none.
type EmployeeRecord struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_id"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	Status       string          `json:"status"`
}

// Profile is the denormalized user view every portal consumes.
type Profile struct {
	ID       string          `json:"id"`
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Role     Role            `json:"role"`
	Employee *EmployeeRecord `json:"employee,omitempty"`
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user is HR manager or admin
func (u *User) IsHR() bool {
	return u.Role == RoleHRManager || u.Role == RoleAdmin
}

// IsDepartmentHead checks if user heads a department
func (u *User) IsDepartmentHead() bool {
	return u.Role == RoleDepartmentHead
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Profile) IsHR() bool {
	return p.Role == RoleHRManager || p.Role == RoleAdmin
}

func (p *Profile) IsDepartmentHead() bool {
	return p.Role == RoleDepartmentHead
}
