package services

import (
	"fmt"
	"strings"

	"project-records/internal/models"
	"project-records/internal/store"
)

// CustomerResolver ищет заказчика по имени и создаёт его, если такого нет.
type CustomerResolver struct {
	customers *CustomerRepo
}

func NewCustomerResolver(repos *Repos) *CustomerResolver {
	return &CustomerResolver{customers: repos.Customers}
}

func (r *CustomerResolver) ResolveOrCreate(tx *store.Tx, name string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ruleError(ErrCustomerNotFound, "customer name is required")
	}

	existing, err := r.customers.Get(tx, store.Where("name", store.Eq, name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.customers.Create(tx, &models.Customer{Name: name})
}

// ContactPersonResolver ищет контакт по email. Найденный контакт
// возвращается без изменений, новый привязывается к заказчику.
type ContactPersonResolver struct {
	contacts *ContactPersonRepo
}

func NewContactPersonResolver(repos *Repos) *ContactPersonResolver {
	return &ContactPersonResolver{contacts: repos.Contacts}
}

func (r *ContactPersonResolver) ResolveOrCreate(tx *store.Tx, customer *models.Customer, d ContactDetails) (*models.ContactPerson, error) {
	existing, err := r.contacts.Get(tx, store.Where("email", store.Eq, d.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r.contacts.Create(tx, &models.ContactPerson{
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Phone:      d.Phone,
		CustomerID: customer.ID,
	})
}

type RoleResolver struct {
	roles *RoleRepo
}

func NewRoleResolver(repos *Repos) *RoleResolver {
	return &RoleResolver{roles: repos.Roles}
}

// Find возвращает nil, nil если роли нет.
func (r *RoleResolver) Find(tx *store.Tx, name string) (*models.EmployeeRole, error) {
	return r.roles.Get(tx, store.Where("name", store.Eq, strings.TrimSpace(name)))
}

func (r *RoleResolver) ResolveOrCreate(tx *store.Tx, name string) (*models.EmployeeRole, error) {
	role, err := r.Find(tx, name)
	if err != nil || role != nil {
		return role, err
	}
	return r.roles.Create(tx, &models.EmployeeRole{Name: strings.TrimSpace(name)})
}

// EmployeeFactory переводит формы в записи и записи в EmployeeView.
type EmployeeFactory struct {
	roles       *RoleResolver
	createRoles bool
}

// NewEmployeeFactory: при createRoles=false неизвестная роль: ErrRoleNotFound.
func NewEmployeeFactory(repos *Repos, createRoles bool) *EmployeeFactory {
	return &EmployeeFactory{roles: NewRoleResolver(repos), createRoles: createRoles}
}

func (f *EmployeeFactory) role(tx *store.Tx, name string) (*models.EmployeeRole, error) {
	if f.createRoles {
		return f.roles.ResolveOrCreate(tx, name)
	}
	role, err := f.roles.Find(tx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ruleError(ErrRoleNotFound, "role %q does not exist", strings.TrimSpace(name))
	}
	return role, nil
}

func (f *EmployeeFactory) FromForm(tx *store.Tx, form EmployeeForm) (*models.Employee, error) {
	role, err := f.role(tx, form.RoleName)
	if err != nil {
		return nil, err
	}
	return &models.Employee{
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     strings.TrimSpace(form.Email),
		Phone:     strings.TrimSpace(form.Phone),
		RoleID:    role.ID,
	}, nil
}

// ToView подтягивает имя роли. Если роли нет, это порча данных, а не «не найдено».
func (f *EmployeeFactory) ToView(tx *store.Tx, e *models.Employee) (*EmployeeView, error) {
	role, err := f.roles.roles.Get(tx, store.ByKey(e.RoleID))
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: employee %d references missing role %d", ErrInconsistentState, e.ID, e.RoleID)
	}
	return &EmployeeView{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		RoleID:    role.ID,
		RoleName:  role.Name,
	}, nil
}
