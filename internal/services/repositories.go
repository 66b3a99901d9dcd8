package services

import (
	"fmt"

	"project-records/internal/models"
	"project-records/internal/store"
)

type (
	CustomerRepo      = store.Repository[models.Customer, *models.Customer]
	ContactPersonRepo = store.Repository[models.ContactPerson, *models.ContactPerson]
	RoleRepo          = store.Repository[models.EmployeeRole, *models.EmployeeRole]
	EmployeeRepo      = store.Repository[models.Employee, *models.Employee]
	ProjectRepo       = store.Repository[models.Project, *models.Project]
	ServiceRepo       = store.Repository[models.Service, *models.Service]
)

// Repos: по одному репозиторию на модель. Поведение проекта задаётся хуками.
type Repos struct {
	Customers *CustomerRepo
	Contacts  *ContactPersonRepo
	Roles     *RoleRepo
	Employees *EmployeeRepo
	Projects  *ProjectRepo
	Services  *ServiceRepo
}

func NewRepos() *Repos {
	return &Repos{
		Customers: store.NewRepository[models.Customer](),
		Contacts:  store.NewRepository[models.ContactPerson](),
		Roles:     store.NewRepository[models.EmployeeRole](),
		Employees: store.NewRepository[models.Employee](),
		Projects: store.NewRepository[models.Project](
			store.BeforeCreate(stampProjectStart),
			store.AfterCreate(assignProjectNumber),
			store.BeforeUpdate(deriveProjectDates),
		),
		Services: store.NewRepository[models.Service](),
	}
}

func stampProjectStart(tx *store.Tx, p *models.Project) error {
	now := tx.Now()
	p.StartDate = now
	p.ProjectNumber = nil
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	p.EndDate = nil
	if p.Status == models.StatusCompleted {
		p.EndDate = &now
	}
	return nil
}

// номер зависит от id, поэтому только после вставки
func assignProjectNumber(tx *store.Tx, p *models.Project) error {
	number := ProjectNumber(p.ID)
	if err := tx.DB().Model(p).Update("project_number", number).Error; err != nil {
		return fmt.Errorf("assign project number %s: %w", number, err)
	}
	p.ProjectNumber = &number
	return nil
}

// start_date и номер не меняются никогда; end_date следует за статусом
func deriveProjectDates(tx *store.Tx, stored, next *models.Project) error {
	next.StartDate = stored.StartDate
	next.ProjectNumber = stored.ProjectNumber
	if next.Status == "" {
		next.Status = stored.Status
	}

	switch {
	case next.Status != models.StatusCompleted:
		next.EndDate = nil
	case stored.Status == models.StatusCompleted && stored.EndDate != nil:
		next.EndDate = stored.EndDate
	default:
		now := tx.Now()
		next.EndDate = &now
	}
	return nil
}
