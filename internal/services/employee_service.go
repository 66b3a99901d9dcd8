package services

import (
	"context"
	"strings"
	"time"

	"project-records/internal/metrics"
	"project-records/internal/store"
)

type EmployeeService struct {
	base
	factory *EmployeeFactory
	roles   *RoleResolver
}

// NewEmployeeService: роли создаются автоматически при первом упоминании.
func NewEmployeeService(uow *store.UnitOfWork, repos *Repos, rec metrics.Recorder) *EmployeeService {
	return &EmployeeService{
		base:    newBase(uow, repos, rec),
		factory: NewEmployeeFactory(repos, true),
		roles:   NewRoleResolver(repos),
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, form EmployeeForm) (view *EmployeeView, err error) {
	const op = "employee.create"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		rec, err := s.factory.FromForm(tx, form)
		if err != nil {
			return err
		}
		if rec, err = s.repos.Employees.Create(tx, rec); err != nil {
			return err
		}
		view, err = s.factory.ToView(tx, rec)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return view, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (view *EmployeeView, err error) {
	const op = "employee.get"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		rec, err := s.repos.Employees.Get(tx, store.ByKey(id))
		if err != nil || rec == nil {
			return err
		}
		view, err = s.factory.ToView(tx, rec)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return view, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context) (views []EmployeeView, err error) {
	const op = "employee.list"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		recs, err := s.repos.Employees.List(tx)
		if err != nil {
			return err
		}
		views = make([]EmployeeView, 0, len(recs))
		for i := range recs {
			v, err := s.factory.ToView(tx, &recs[i])
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

// UpdateEmployee меняет только непустые поля. nil, nil если сотрудника нет.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, form EmployeeUpdateForm) (view *EmployeeView, err error) {
	const op = "employee.update"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		rec, err := s.repos.Employees.Get(tx, store.ByKey(id))
		if err != nil || rec == nil {
			return err
		}

		if v := strings.TrimSpace(form.FirstName); v != "" {
			rec.FirstName = v
		}
		if v := strings.TrimSpace(form.LastName); v != "" {
			rec.LastName = v
		}
		if v := strings.TrimSpace(form.Email); v != "" {
			rec.Email = v
		}
		if v := strings.TrimSpace(form.Phone); v != "" {
			rec.Phone = v
		}
		if name := strings.TrimSpace(form.RoleName); name != "" {
			role, err := s.roles.ResolveOrCreate(tx, name)
			if err != nil {
				return err
			}
			rec.RoleID = role.ID
		}

		if rec, err = s.repos.Employees.Update(tx, store.ByKey(id), rec); err != nil {
			return err
		}
		view, err = s.factory.ToView(tx, rec)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return view, nil
}

// DeleteEmployee отказывает, пока сотрудник руководит хотя бы одним проектом.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint) (deleted bool, err error) {
	const op = "employee.delete"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		leads, err := s.repos.Projects.Exists(tx, store.Where("leader_id", store.Eq, id))
		if err != nil {
			return err
		}
		if leads {
			return ruleError(ErrEmployeeInUse, "employee %d still leads a project", id)
		}
		deleted, err = s.repos.Employees.Delete(tx, store.ByKey(id))
		return err
	})
	if err != nil {
		return false, s.fail(ctx, op, err)
	}
	return deleted, nil
}
