package services

import (
	"errors"
	"fmt"
)

// Нарушения бизнес-правил. Возвращаются вызывающему как есть,
// сравнивать через errors.Is.
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerChange     = errors.New("customer cannot be changed for an existing project")
	ErrContactEmailChange = errors.New("contact person email cannot be changed for an existing project")
	ErrLeaderNotFound     = errors.New("project leader not found")
	ErrRoleNotFound       = errors.New("employee role not found")
	ErrEmployeeInUse      = errors.New("employee still leads a project")
)

var (
	// ErrOperationFailed: всё прочее: ошибка уже залогирована, детали наружу не отдаём
	ErrOperationFailed = errors.New("operation failed")

	// ErrInconsistentState: данные в базе противоречат ссылкам (например, у сотрудника нет роли)
	ErrInconsistentState = errors.New("inconsistent state")
)

// RuleError несёт одну из ошибок-правил выше и текст для клиента.
type RuleError struct {
	Kind error
	Msg  string
}

func (e *RuleError) Error() string { return e.Msg }
func (e *RuleError) Unwrap() error { return e.Kind }

func ruleError(kind error, format string, args ...any) error {
	return &RuleError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
