package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project-records/internal/metrics"
	"project-records/internal/models"
	"project-records/internal/store"
)

// ProjectService создаёт, меняет и удаляет проекты. Каждая операция
// выполняется в одной транзакции.
type ProjectService struct {
	base
	customers *CustomerResolver
	contacts  *ContactPersonResolver
}

func NewProjectService(uow *store.UnitOfWork, repos *Repos, rec metrics.Recorder) *ProjectService {
	return &ProjectService{
		base:      newBase(uow, repos, rec),
		customers: NewCustomerResolver(repos),
		contacts:  NewContactPersonResolver(repos),
	}
}

//
// СОЗДАНИЕ
//

func (s *ProjectService) CreateProject(ctx context.Context, form ProjectForm) (view *ProjectView, err error) {
	const op = "project.create"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		customer, contact, err := s.resolveParties(tx, form)
		if err != nil {
			return err
		}

		leaderExists, err := s.repos.Employees.Exists(tx, store.ByKey(form.LeaderID))
		if err != nil {
			return err
		}
		if !leaderExists {
			return ruleError(ErrLeaderNotFound, "project leader %d does not exist", form.LeaderID)
		}

		project, err := s.repos.Projects.Create(tx, &models.Project{
			LeaderID:        form.LeaderID,
			CustomerID:      customer.ID,
			ContactPersonID: contact.ID,
			Deadline:        form.Deadline,
			Status:          form.status(),
		})
		if err != nil {
			return err
		}

		view, err = s.view(tx, project)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	NewLogger(ctx).LogInfof(op, "created project %s", view.ProjectNumber)
	return view, nil
}

// resolveParties находит или создаёт заказчика и контакт в транзакции вызывающего
func (s *ProjectService) resolveParties(tx *store.Tx, form ProjectForm) (customer *models.Customer, contact *models.ContactPerson, err error) {
	err = tx.Run(func(tx *store.Tx) error {
		if customer, err = s.customers.ResolveOrCreate(tx, form.CustomerName); err != nil {
			return err
		}
		contact, err = s.contacts.ResolveOrCreate(tx, customer, form.contact())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return customer, contact, nil
}

//
// ОБНОВЛЕНИЕ
//

// UpdateProject не даёт сменить заказчика и email контакта. Руководитель,
// дедлайн и статус меняются; end_date выставляет хук репозитория.
func (s *ProjectService) UpdateProject(ctx context.Context, id uint, form ProjectForm) (view *ProjectView, err error) {
	const op = "project.update"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		project, err := s.repos.Projects.Get(tx, store.ByKey(id))
		if err != nil {
			return err
		}
		if project == nil {
			return ruleError(ErrProjectNotFound, "project %d does not exist", id)
		}

		customer, err := s.repos.Customers.Get(tx, store.ByKey(project.CustomerID))
		if err != nil {
			return err
		}
		if customer == nil {
			return ruleError(ErrCustomerNotFound, "customer %d does not exist", project.CustomerID)
		}

		// пустое имя: оставить текущего заказчика
		if name := strings.TrimSpace(form.CustomerName); name != "" && name != customer.Name {
			return ruleError(ErrCustomerChange, "cannot change customer of project %d, create a new project instead", id)
		}

		contact, err := s.repos.Contacts.Get(tx, store.ByKey(project.ContactPersonID))
		if err != nil {
			return err
		}
		if contact != nil {
			details := form.contact()
			if details.Email != contact.Email {
				return ruleError(ErrContactEmailChange, "cannot change contact person email of project %d, create a new project instead", id)
			}

			contact.FirstName = details.FirstName
			contact.LastName = details.LastName
			contact.Phone = details.Phone
			if _, err := s.repos.Contacts.Update(tx, store.ByKey(contact.ID), contact); err != nil {
				return err
			}
		}

		next := *project
		if form.LeaderID > 0 && form.LeaderID != project.LeaderID {
			exists, err := s.repos.Employees.Exists(tx, store.ByKey(form.LeaderID))
			if err != nil {
				return err
			}
			if !exists {
				return ruleError(ErrLeaderNotFound, "project leader %d does not exist", form.LeaderID)
			}
			next.LeaderID = form.LeaderID
		}
		next.Deadline = form.Deadline
		next.Status = form.status()

		updated, err := s.repos.Projects.Update(tx, store.ByKey(id), &next)
		if err != nil {
			return err
		}
		if updated == nil {
			return ruleError(ErrProjectNotFound, "project %d does not exist", id)
		}

		view, err = s.view(tx, updated)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return view, nil
}

//
// УДАЛЕНИЕ
//

// DeleteProject возвращает false, если проекта не было. Услуги удаляет каскад в базе.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint) (deleted bool, err error) {
	const op = "project.delete"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		deleted, err = s.repos.Projects.Delete(tx, store.ByKey(id))
		return err
	})
	if err != nil {
		return false, s.fail(ctx, op, err)
	}
	return deleted, nil
}

//
// ЧТЕНИЕ
//

// GetProject возвращает nil, nil если проекта нет.
func (s *ProjectService) GetProject(ctx context.Context, id uint) (view *ProjectView, err error) {
	const op = "project.get"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		project, err := s.repos.Projects.Get(tx, store.ByKey(id))
		if err != nil || project == nil {
			return err
		}
		view, err = s.view(tx, project)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return view, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, filter ProjectFilter) (views []ProjectView, err error) {
	const op = "project.list"
	defer s.observe(ctx, op, time.Now(), &err)

	spec := store.Spec{}
	if filter.Status != "" {
		spec = spec.And("status", store.Eq, filter.Status)
	}
	if filter.CustomerID > 0 {
		spec = spec.And("customer_id", store.Eq, filter.CustomerID)
	}

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		projects, err := s.repos.Projects.List(tx, spec)
		if err != nil {
			return err
		}
		views = make([]ProjectView, 0, len(projects))
		for i := range projects {
			v, err := s.view(tx, &projects[i])
			if err != nil {
				return err
			}
			views = append(views, *v)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return views, nil
}

func (s *ProjectService) view(tx *store.Tx, p *models.Project) (*ProjectView, error) {
	leader, err := s.repos.Employees.Get(tx, store.ByKey(p.LeaderID))
	if err != nil {
		return nil, err
	}
	customer, err := s.repos.Customers.Get(tx, store.ByKey(p.CustomerID))
	if err != nil {
		return nil, err
	}
	contact, err := s.repos.Contacts.Get(tx, store.ByKey(p.ContactPersonID))
	if err != nil {
		return nil, err
	}
	if leader == nil || customer == nil || contact == nil {
		return nil, fmt.Errorf("%w: project %d has dangling references", ErrInconsistentState, p.ID)
	}

	return &ProjectView{
		ID:              p.ID,
		ProjectNumber:   p.Number(),
		LeaderID:        leader.ID,
		LeaderName:      leader.FullName(),
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		ContactPersonID: contact.ID,
		ContactName:     contact.FullName(),
		ContactEmail:    contact.Email,
		ContactPhone:    contact.Phone,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Deadline:        p.Deadline,
		Status:          p.Status,
	}, nil
}
