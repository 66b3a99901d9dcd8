package services

import (
	"context"
	"strings"
	"time"

	"project-records/internal/metrics"
	"project-records/internal/models"
	"project-records/internal/store"
)

// ServiceItems: оплачиваемые позиции проекта.
type ServiceItems struct {
	base
}

func NewServiceItems(uow *store.UnitOfWork, repos *Repos, rec metrics.Recorder) *ServiceItems {
	return &ServiceItems{base: newBase(uow, repos, rec)}
}

// CreateService не проверяет проект заранее: несуществующий project_id
// отклонит внешний ключ, и вызывающий получит ErrOperationFailed.
func (s *ServiceItems) CreateService(ctx context.Context, projectID uint, form ServiceForm) (svc *models.Service, err error) {
	const op = "service.create"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		svc, err = s.repos.Services.Create(tx, &models.Service{
			ProjectID:   projectID,
			Name:        strings.TrimSpace(form.Name),
			Description: strings.TrimSpace(form.Description),
			Price:       form.Price,
		})
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return svc, nil
}

// UpdateService: nil, nil если услуги нет.
func (s *ServiceItems) UpdateService(ctx context.Context, id uint, form ServiceUpdateForm) (svc *models.Service, err error) {
	const op = "service.update"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		current, err := s.repos.Services.Get(tx, store.ByKey(id))
		if err != nil || current == nil {
			return err
		}

		if name := strings.TrimSpace(form.Name); name != "" {
			current.Name = name
		}
		if desc := strings.TrimSpace(form.Description); desc != "" {
			current.Description = desc
		}
		if form.Price != nil {
			current.Price = *form.Price
		}

		svc, err = s.repos.Services.Update(tx, store.ByKey(id), current)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return svc, nil
}

func (s *ServiceItems) DeleteService(ctx context.Context, id uint) (deleted bool, err error) {
	const op = "service.delete"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		deleted, err = s.repos.Services.Delete(tx, store.ByKey(id))
		return err
	})
	if err != nil {
		return false, s.fail(ctx, op, err)
	}
	return deleted, nil
}

func (s *ServiceItems) GetService(ctx context.Context, id uint) (svc *models.Service, err error) {
	const op = "service.get"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		svc, err = s.repos.Services.Get(tx, store.ByKey(id))
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return svc, nil
}

func (s *ServiceItems) ListByProject(ctx context.Context, projectID uint) (list []models.Service, err error) {
	const op = "service.list_by_project"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		list, err = s.repos.Services.List(tx, store.Where("project_id", store.Eq, projectID))
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return list, nil
}

func (s *ServiceItems) ListServices(ctx context.Context) (list []models.Service, err error) {
	const op = "service.list"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		list, err = s.repos.Services.List(tx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return list, nil
}
