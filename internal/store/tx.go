package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrRollbackOnly возвращается из Run, если вложенный вызов завершился ошибкой,
// а внешняя функция её проглотила.
var ErrRollbackOnly = errors.New("transaction marked rollback-only")

// UnitOfWork открывает одну транзакцию на операцию.
type UnitOfWork struct {
	db    *gorm.DB
	clock func() time.Time
}

type UnitOfWorkOption func(*UnitOfWork)

// WithClock подменяет источник времени (для тестов).
func WithClock(clock func() time.Time) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		if clock != nil {
			u.clock = clock
		}
	}
}

func NewUnitOfWork(db *gorm.DB, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{db: db, clock: defaultClock}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// микросекунды: точность timestamp в postgres
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Run выполняет fn в новой транзакции. Коммит только если fn вернула nil
// и ни один вложенный Tx.Run не упал.
func (u *UnitOfWork) Run(ctx context.Context, fn func(tx *Tx) error) error {
	gtx := u.db.WithContext(ctx).Begin()
	if gtx.Error != nil {
		return fmt.Errorf("begin transaction: %w", gtx.Error)
	}

	tx := &Tx{db: gtx, now: u.clock()}

	defer func() {
		if r := recover(); r != nil {
			gtx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if tx.rollbackOnly {
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			return errors.Join(ErrRollbackOnly, fmt.Errorf("rollback: %w", rbErr))
		}
		return ErrRollbackOnly
	}

	if err := gtx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tx: явный дескриптор открытой транзакции.
type Tx struct {
	db           *gorm.DB
	now          time.Time
	rollbackOnly bool
}

// Run присоединяется к уже открытой транзакции. Коммитит или откатывает
// только внешний UnitOfWork.Run.
func (t *Tx) Run(fn func(tx *Tx) error) error {
	if err := fn(t); err != nil {
		t.rollbackOnly = true
		return err
	}
	return nil
}

// Now: одно и то же время на всю транзакцию.
func (t *Tx) Now() time.Time {
	return t.now
}

func (t *Tx) RollbackOnly() bool {
	return t.rollbackOnly
}

// DB отдаёт сессию gorm, привязанную к транзакции.
func (t *Tx) DB() *gorm.DB {
	return t.db
}
