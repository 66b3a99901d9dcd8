package store

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidSpec = errors.New("invalid query spec")

type Op string

const (
	Eq   Op = "="
	Ne   Op = "<>"
	Lt   Op = "<"
	Le   Op = "<="
	Gt   Op = ">"
	Ge   Op = ">="
	Like Op = "LIKE"
	In   Op = "IN"
)

type Cond struct {
	Field string
	Op    Op
	Value any
}

// Spec: условия, объединённые через AND. Пустой Spec подходит под любую запись.
type Spec struct {
	Conds []Cond
}

func Where(field string, op Op, value any) Spec {
	return Spec{Conds: []Cond{{Field: field, Op: op, Value: value}}}
}

func ByKey(id uint) Spec {
	return Where("id", Eq, id)
}

func (s Spec) And(field string, op Op, value any) Spec {
	conds := make([]Cond, 0, len(s.Conds)+1)
	conds = append(conds, s.Conds...)
	conds = append(conds, Cond{Field: field, Op: op, Value: value})
	return Spec{Conds: conds}
}

func (s Spec) apply(db *gorm.DB) (*gorm.DB, error) {
	for _, c := range s.Conds {
		expr, err := c.expression()
		if err != nil {
			return nil, err
		}
		db = db.Where(expr)
	}
	return db, nil
}

func (c Cond) expression() (clause.Expression, error) {
	if c.Field == "" {
		return nil, fmt.Errorf("%w: empty field", ErrInvalidSpec)
	}
	col := clause.Column{Name: c.Field}

	switch c.Op {
	case Eq:
		return clause.Eq{Column: col, Value: c.Value}, nil
	case Ne:
		return clause.Neq{Column: col, Value: c.Value}, nil
	case Lt:
		return clause.Lt{Column: col, Value: c.Value}, nil
	case Le:
		return clause.Lte{Column: col, Value: c.Value}, nil
	case Gt:
		return clause.Gt{Column: col, Value: c.Value}, nil
	case Ge:
		return clause.Gte{Column: col, Value: c.Value}, nil
	case Like:
		return clause.Like{Column: col, Value: c.Value}, nil
	case In:
		values, err := expand(c.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidSpec, c.Field, err)
		}
		return clause.IN{Column: col, Values: values}, nil
	}
	return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidSpec, c.Op)
}

func expand(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("IN expects a slice, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
