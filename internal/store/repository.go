package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record: модель с автоинкрементным ключом.
type Record interface {
	Key() uint
	SetKey(id uint)
}

type Hook[T any] func(tx *Tx, rec *T) error

// UpdateHook видит сохранённую запись и новые значения до записи.
type UpdateHook[T any] func(tx *Tx, stored, next *T) error

type hooks[T any] struct {
	beforeCreate []Hook[T]
	afterCreate  []Hook[T]
	beforeUpdate []UpdateHook[T]
}

type Option[T any] func(*hooks[T])

func BeforeCreate[T any](fn Hook[T]) Option[T] {
	return func(h *hooks[T]) { h.beforeCreate = append(h.beforeCreate, fn) }
}

// AfterCreate вызывается после присвоения ключа. Если хуки есть,
// Create перечитывает запись из базы.
func AfterCreate[T any](fn Hook[T]) Option[T] {
	return func(h *hooks[T]) { h.afterCreate = append(h.afterCreate, fn) }
}

func BeforeUpdate[T any](fn UpdateHook[T]) Option[T] {
	return func(h *hooks[T]) { h.beforeUpdate = append(h.beforeUpdate, fn) }
}

// Repository: CRUD над одной моделью внутри переданной транзакции.
type Repository[T any, PT interface {
	*T
	Record
}] struct {
	name  string
	hooks hooks[T]
}

func NewRepository[T any, PT interface {
	*T
	Record
}](opts ...Option[T]) *Repository[T, PT] {
	var zero T
	r := &Repository[T, PT]{name: fmt.Sprintf("%T", zero)}
	for _, opt := range opts {
		opt(&r.hooks)
	}
	return r
}

func (r *Repository[T, PT]) Create(tx *Tx, rec *T) (*T, error) {
	for _, h := range r.hooks.beforeCreate {
		if err := h(tx, rec); err != nil {
			return nil, err
		}
	}

	if err := tx.db.Omit(clause.Associations).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", r.name, err)
	}

	if len(r.hooks.afterCreate) == 0 {
		return rec, nil
	}
	for _, h := range r.hooks.afterCreate {
		if err := h(tx, rec); err != nil {
			return nil, err
		}
	}

	stored, err := r.Get(tx, ByKey(PT(rec).Key()))
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("create %s: row %d vanished after insert", r.name, PT(rec).Key())
	}
	return stored, nil
}

// Get возвращает nil, nil если ничего не найдено.
func (r *Repository[T, PT]) Get(tx *Tx, spec Spec) (*T, error) {
	q, err := spec.apply(tx.db)
	if err != nil {
		return nil, err
	}

	var rec T
	if err := q.Order("id").Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.name, err)
	}
	return &rec, nil
}

func (r *Repository[T, PT]) List(tx *Tx, specs ...Spec) ([]T, error) {
	q := tx.db
	for _, s := range specs {
		var err error
		if q, err = s.apply(q); err != nil {
			return nil, err
		}
	}

	out := []T{}
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

// Update перезаписывает все поля первой подходящей записи значениями values.
// nil, nil если запись не найдена.
func (r *Repository[T, PT]) Update(tx *Tx, spec Spec, values *T) (*T, error) {
	stored, err := r.Get(tx, spec)
	if err != nil || stored == nil {
		return nil, err
	}

	key := PT(stored).Key()
	PT(values).SetKey(key)

	for _, h := range r.hooks.beforeUpdate {
		if err := h(tx, stored, values); err != nil {
			return nil, err
		}
	}

	if err := tx.db.Omit(clause.Associations).Save(values).Error; err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.name, key, err)
	}
	return r.Get(tx, ByKey(key))
}

func (r *Repository[T, PT]) Delete(tx *Tx, spec Spec) (bool, error) {
	stored, err := r.Get(tx, spec)
	if err != nil || stored == nil {
		return false, err
	}

	key := PT(stored).Key()
	res := tx.db.Delete(new(T), key)
	if res.Error != nil {
		return false, fmt.Errorf("delete %s %d: %w", r.name, key, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository[T, PT]) Exists(tx *Tx, spec Spec) (bool, error) {
	q, err := spec.apply(tx.db.Model(new(T)))
	if err != nil {
		return false, err
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("exists %s: %w", r.name, err)
	}
	return n > 0, nil
}
