package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleViewer  UserRole = "viewer"
)

// User: оператор API, не бизнес-запись
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
}

// AllModels: родительские таблицы идут первыми
func AllModels() []any {
	return []any{
		&User{},
		&Customer{},
		&ContactPerson{},
		&EmployeeRole{},
		&Employee{},
		&Project{},
		&Service{},
	}
}
