package services

import (
	"strings"
	"time"

	"project-records/internal/models"
)

// Формы приходят уже провалидированными (теги binding проверяет gin).

type EmployeeForm struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	RoleName  string `json:"role_name" binding:"required,max=100"`
}

// EmployeeUpdateForm: пустые поля не меняются
type EmployeeUpdateForm struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	RoleName  string `json:"role_name" binding:"omitempty,max=100"`
}

// ProjectForm используется и при создании, и при обновлении.
// При обновлении пустое имя заказчика означает «не менять».
// StartDate и EndDate принимаются, но игнорируются: их выставляет хранилище.
type ProjectForm struct {
	CustomerName string `json:"customer_name" binding:"omitempty,max=100"`

	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`

	LeaderID uint `json:"leader_id"`

	StartDate *time.Time           `json:"start_date"`
	EndDate   *time.Time           `json:"end_date"`
	Deadline  *time.Time           `json:"deadline"`
	Status    models.ProjectStatus `json:"status" binding:"omitempty,oneof=Active Completed Inactive"`
}

type ContactDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (f ProjectForm) contact() ContactDetails {
	return ContactDetails{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
	}
}

func (f ProjectForm) status() models.ProjectStatus {
	if f.Status == "" {
		return models.StatusActive
	}
	return f.Status
}

type ServiceForm struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// ServiceUpdateForm: пустые имя и описание не меняются, цена меняется если передана
type ServiceUpdateForm struct {
	Name        string   `json:"name" binding:"omitempty,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// ProjectFilter: необязательные фильтры списка проектов
type ProjectFilter struct {
	Status     models.ProjectStatus
	CustomerID uint
}
