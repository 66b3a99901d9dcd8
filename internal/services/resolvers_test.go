package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-records/internal/models"
	"project-records/internal/store"
)

func TestResolvers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	customers := NewCustomerResolver(env.repos)
	contacts := NewContactPersonResolver(env.repos)

	t.Run("customer resolved twice is created once", func(t *testing.T) {
		var first, second *models.Customer
		require.NoError(t, env.uow.Run(ctx, func(tx *store.Tx) error {
			var err error
			first, err = customers.ResolveOrCreate(tx, "Acme AB")
			return err
		}))
		require.NoError(t, env.uow.Run(ctx, func(tx *store.Tx) error {
			var err error
			second, err = customers.ResolveOrCreate(tx, " Acme AB ")
			return err
		}))
		assert.Equal(t, first.ID, second.ID)
		assert.EqualValues(t, 1, env.count(t, &models.Customer{}))
	})

	t.Run("contact person resolved by email", func(t *testing.T) {
		require.NoError(t, env.uow.Run(ctx, func(tx *store.Tx) error {
			owner, err := customers.ResolveOrCreate(tx, "Acme AB")
			require.NoError(t, err)

			first, err := contacts.ResolveOrCreate(tx, owner, ContactDetails{FirstName: "Anna", LastName: "Berg", Email: "anna@acme.test"})
			require.NoError(t, err)
			assert.Equal(t, owner.ID, first.CustomerID)

			second, err := contacts.ResolveOrCreate(tx, owner, ContactDetails{FirstName: "Other", LastName: "Name", Email: "anna@acme.test"})
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, "Anna", second.FirstName)
			return nil
		}))
		assert.EqualValues(t, 1, env.count(t, &models.ContactPerson{}))
	})

	t.Run("contact created in a failed unit of work is rolled back", func(t *testing.T) {
		err := env.uow.Run(ctx, func(tx *store.Tx) error {
			owner, err := customers.ResolveOrCreate(tx, "Doomed Inc")
			if err != nil {
				return err
			}
			if _, err := contacts.ResolveOrCreate(tx, owner, ContactDetails{FirstName: "Dee", LastName: "Oomed", Email: "dee@doomed.test"}); err != nil {
				return err
			}
			return ErrLeaderNotFound
		})
		require.ErrorIs(t, err, ErrLeaderNotFound)

		var n int64
		require.NoError(t, env.db.Model(&models.ContactPerson{}).Where("email = ?", "dee@doomed.test").Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestEmployeeFactory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	form := EmployeeForm{FirstName: "Eva", LastName: "Holm", Email: "eva@corp.test", RoleName: "Developer"}

	t.Run("role creation disabled", func(t *testing.T) {
		strict := NewEmployeeFactory(env.repos, false)
		err := env.uow.Run(ctx, func(tx *store.Tx) error {
			_, err := strict.FromForm(tx, form)
			return err
		})
		require.ErrorIs(t, err, ErrRoleNotFound)
		assert.Zero(t, env.count(t, &models.EmployeeRole{}))
	})

	t.Run("role created on demand then reused", func(t *testing.T) {
		lenient := NewEmployeeFactory(env.repos, true)
		require.NoError(t, env.uow.Run(ctx, func(tx *store.Tx) error {
			a, err := lenient.FromForm(tx, form)
			require.NoError(t, err)
			b, err := lenient.FromForm(tx, form)
			require.NoError(t, err)
			assert.Equal(t, a.RoleID, b.RoleID)
			return nil
		}))
		assert.EqualValues(t, 1, env.count(t, &models.EmployeeRole{}))

		strict := NewEmployeeFactory(env.repos, false)
		require.NoError(t, env.uow.Run(ctx, func(tx *store.Tx) error {
			_, err := strict.FromForm(tx, form)
			return err
		}))
	})

	t.Run("missing role on view is a consistency error", func(t *testing.T) {
		f := NewEmployeeFactory(env.repos, true)
		err := env.uow.Run(ctx, func(tx *store.Tx) error {
			_, err := f.ToView(tx, &models.Employee{ID: 7, RoleID: 999})
			return err
		})
		require.ErrorIs(t, err, ErrInconsistentState)
		assert.False(t, IsRuleError(err))
	})
}
