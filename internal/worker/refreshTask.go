package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"card_tracker/pkg/application/modules"
)

const (
	TaskRefreshPrices = "tracking:refresh"
	QueueTracking     = "tracking"
)

func NewRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskRefreshPrices, nil, asynq.Queue(QueueTracking), asynq.MaxRetry(1))
}

// RefreshHandler обработчик задачи обновления цен для asynq сервера.
func (w *PriceRefresher) RefreshHandler() modules.AsynqHandler {
	return modules.AsynqHandler{
		Pattern: TaskRefreshPrices,
		Handle: func(ctx context.Context, _ *asynq.Task) error {
			if _, err := w.Refresh(ctx); err != nil {
				return fmt.Errorf("priceRefresher.Refresh: %w", err)
			}

			return nil
		},
	}
}
