package handlers

import (
	"project-records/internal/services"

	"gorm.io/gorm"
)

// Handlers: HTTP-обработчики JSON API поверх сервисного слоя.
type Handlers struct {
	DB        *gorm.DB
	Projects  *services.ProjectService
	Items     *services.ServiceItems
	Employees *services.EmployeeService
	Customers *services.CustomerService

	Version string
}
