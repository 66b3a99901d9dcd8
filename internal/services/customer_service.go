package services

import (
	"context"
	"time"

	"project-records/internal/metrics"
	"project-records/internal/models"
	"project-records/internal/store"
)

// CustomerService только читает: заказчики и контакты создаются при создании проекта.
type CustomerService struct {
	base
}

func NewCustomerService(uow *store.UnitOfWork, repos *Repos, rec metrics.Recorder) *CustomerService {
	return &CustomerService{base: newBase(uow, repos, rec)}
}

func (s *CustomerService) ListCustomers(ctx context.Context) (list []models.Customer, err error) {
	const op = "customer.list"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		list, err = s.repos.Customers.List(tx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return list, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (c *models.Customer, err error) {
	const op = "customer.get"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		c, err = s.repos.Customers.Get(tx, store.ByKey(id))
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return c, nil
}

// ListContacts: nil, nil если заказчика нет.
func (s *CustomerService) ListContacts(ctx context.Context, customerID uint) (list []models.ContactPerson, err error) {
	const op = "customer.list_contacts"
	defer s.observe(ctx, op, time.Now(), &err)

	err = s.uow.Run(ctx, func(tx *store.Tx) error {
		exists, err := s.repos.Customers.Exists(tx, store.ByKey(customerID))
		if err != nil || !exists {
			return err
		}
		list, err = s.repos.Contacts.List(tx, store.Where("customer_id", store.Eq, customerID))
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return list, nil
}
