package repo

import (
	"context"

	"github.com/BuzzLyutic/task-cache-service/internal/model"
)

// TaskRepository определяет интерфейс хранилища задач.
// Некорректный id не является ошибкой: Get/Update возвращают ErrorNotFound, Delete - false.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.StoredTask, error)
	Get(ctx context.Context, id string) (model.StoredTask, error)
	Update(ctx context.Context, id string, t model.Task) (model.StoredTask, error)
	Delete(ctx context.Context, id string) (bool, error)
}
