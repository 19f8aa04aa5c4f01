package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-cache-service/internal/model"
)

// MemoryTaskRepo - хранилище в памяти процесса. Для локального запуска и тестов.
type MemoryTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		tasks: make(map[string]model.Task),
	}
}

func (r *MemoryTaskRepo) Create(ctx context.Context, t model.Task) (model.StoredTask, error) {
	id := uuid.NewString()

	r.mu.Lock()
	r.tasks[id] = t
	r.mu.Unlock()

	return model.StoredTask{ID: id, Task: t}, nil
}

func (r *MemoryTaskRepo) Get(ctx context.Context, id string) (model.StoredTask, error) {
	r.mu.RLock()
	t, ok := r.tasks[id]
	r.mu.RUnlock()

	if !ok {
		return model.StoredTask{}, ErrorNotFound
	}
	return model.StoredTask{ID: id, Task: t}, nil
}

func (r *MemoryTaskRepo) Update(ctx context.Context, id string, t model.Task) (model.StoredTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.tasks[id]
	if !ok || old == t { // как и в остальных хранилищах, "ничего не изменилось" == not found
		return model.StoredTask{}, ErrorNotFound
	}
	r.tasks[id] = t
	return model.StoredTask{ID: id, Task: t}, nil
}

func (r *MemoryTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *MemoryTaskRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
