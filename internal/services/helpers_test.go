package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-records/internal/metrics"
	"project-records/internal/models"
	"project-records/internal/store"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type testEnv struct {
	db        *gorm.DB
	clock     *testClock
	repos     *Repos
	uow       *store.UnitOfWork
	projects  *ProjectService
	items     *ServiceItems
	employees *EmployeeService
	customers *CustomerService
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, openSQLite(t))
}

func newTestEnvWithDB(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	clock := &testClock{now: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)}
	uow := store.NewUnitOfWork(db, store.WithClock(clock.Now))
	repos := NewRepos()

	return &testEnv{
		db:        db,
		clock:     clock,
		repos:     repos,
		uow:       uow,
		projects:  NewProjectService(uow, repos, metrics.Nop),
		items:     NewServiceItems(uow, repos, metrics.Nop),
		employees: NewEmployeeService(uow, repos, metrics.Nop),
		customers: NewCustomerService(uow, repos, nil),
	}
}

func (e *testEnv) leader(t *testing.T, first, email string) uint {
	t.Helper()
	v, err := e.employees.CreateEmployee(context.Background(), EmployeeForm{
		FirstName: first,
		LastName:  "Lead",
		Email:     email,
		RoleName:  "Project Manager",
	})
	require.NoError(t, err)
	return v.ID
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func projectForm(customer, email string, leaderID uint) ProjectForm {
	return ProjectForm{
		CustomerName: customer,
		FirstName:    "Anna",
		LastName:     "Berg",
		Email:        email,
		Phone:        "+46 70 123 4567",
		LeaderID:     leaderID,
	}
}
