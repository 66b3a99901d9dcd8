package services

import (
	"context"
	"time"

	"project-records/internal/metrics"
	"project-records/internal/store"
)

// base: общие зависимости сервисов: транзакции, репозитории, метрики.
type base struct {
	uow     *store.UnitOfWork
	repos   *Repos
	metrics metrics.Recorder
}

func newBase(uow *store.UnitOfWork, repos *Repos, rec metrics.Recorder) base {
	if rec == nil {
		rec = metrics.Nop
	}
	return base{uow: uow, repos: repos, metrics: rec}
}

func (b *base) observe(ctx context.Context, operation string, start time.Time, err *error) {
	b.metrics.Observe(ctx, operation, *err == nil, time.Since(start))
}

// fail: ошибки-правила уходят наверх как есть, остальное логируем
// и заменяем на ErrOperationFailed.
func (b *base) fail(ctx context.Context, operation string, err error) error {
	logger := NewLogger(ctx)
	if IsRuleError(err) {
		logger.LogWarnf(operation, "rejected: %v", err)
		return err
	}
	logger.LogError(operation, err)
	return ErrOperationFailed
}
