package models

import "strings"

// EmployeeRole создаётся по требованию, когда встречается новое имя роли
type EmployeeRole struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (r *EmployeeRole) Key() uint      { return r.ID }
func (r *EmployeeRole) SetKey(id uint) { r.ID = id }

type Employee struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	RoleID uint          `gorm:"not null;index" json:"role_id"`
	Role   *EmployeeRole `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (e *Employee) Key() uint      { return e.ID }
func (e *Employee) SetKey(id uint) { e.ID = id }

func (e *Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
