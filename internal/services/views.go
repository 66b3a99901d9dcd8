package services

import (
	"time"

	"project-records/internal/models"
)

// ProjectView: проект вместе с именами руководителя, заказчика и контакта.
type ProjectView struct {
	ID            uint   `json:"id"`
	ProjectNumber string `json:"project_number"`

	LeaderID   uint   `json:"leader_id"`
	LeaderName string `json:"leader_name"`

	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`

	ContactPersonID uint   `json:"contact_person_id"`
	ContactName     string `json:"contact_name"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone,omitempty"`

	StartDate time.Time            `json:"start_date"`
	EndDate   *time.Time           `json:"end_date"`
	Deadline  *time.Time           `json:"deadline"`
	Status    models.ProjectStatus `json:"status"`
}

type EmployeeView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	RoleID    uint   `json:"role_id"`
	RoleName  string `json:"role_name"`
}
