package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-cache-service/internal/cache"
	"github.com/BuzzLyutic/task-cache-service/internal/model"
	"github.com/BuzzLyutic/task-cache-service/internal/repo"
)

// ErrValidation оставлен для обработчиков: это тот же sentinel, что и в model.
var ErrValidation = model.ErrValidation

type Options struct {
	// KeyPrefix добавляется к id в ключе кэша; пустой - ключом служит сам id.
	KeyPrefix string
	// FailOpen: сбой кэша логируется, чтение идет только через хранилище.
	FailOpen bool
	// InvalidateOnWrite: успешные update/delete удаляют запись из кэша.
	// По умолчанию выключено, кэш может отдавать устаревшую копию.
	InvalidateOnWrite bool
}

// TaskService реализует cache-aside: чтение идет через кэш, запись - напрямую в хранилище.
type TaskService struct {
	repo   repo.TaskRepository
	cache  cache.Cache
	opts   Options
	logger *zap.Logger
}

func NewTaskService(repo repo.TaskRepository, c cache.Cache, logger *zap.Logger, opts Options) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:   repo,
		cache:  c,
		opts:   opts,
		logger: logger,
	}
}

// GetTask: кэш -> хранилище -> запись в кэш. Отсутствие задачи не кэшируется,
// в этом случае возвращается repo.ErrorNotFound.
func (s *TaskService) GetTask(ctx context.Context, id string) (model.StoredTask, error) {
	key := cache.Key(s.opts.KeyPrefix, id)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		if !s.opts.FailOpen {
			return model.StoredTask{}, fmt.Errorf("get task %s from cache: %w", id, err)
		}
		s.logger.Warn("cache get failed, falling back to store", zap.String("task_id", id), zap.Error(err))
	}
	if ok {
		task, err := model.DecodeTask(cached)
		if err == nil {
			s.logger.Debug("task served from cache", zap.String("task_id", id))
			return task, nil
		}
		s.logger.Warn("undecodable cache entry, reading store", zap.String("task_id", id), zap.Error(err))
	}

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.StoredTask{}, err
	}

	encoded, err := model.EncodeTask(task)
	if err != nil {
		return model.StoredTask{}, err
	}
	if err := s.cache.Set(ctx, key, encoded); err != nil {
		if !s.opts.FailOpen {
			return model.StoredTask{}, fmt.Errorf("put task %s into cache: %w", id, err)
		}
		s.logger.Warn("cache set failed", zap.String("task_id", id), zap.Error(err))
	} else {
		s.logger.Debug("task stored in cache", zap.String("task_id", id))
	}

	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, t model.Task) (model.StoredTask, error) {
	if err := s.validate(&t); err != nil { // Валидация до обращения к хранилищу
		return model.StoredTask{}, err
	}
	return s.repo.Create(ctx, t)
}

// UpdateTask не трогает кэш, если InvalidateOnWrite выключен.
func (s *TaskService) UpdateTask(ctx context.Context, id string, t model.Task) (model.StoredTask, error) {
	if err := s.validate(&t); err != nil {
		return model.StoredTask{}, err
	}

	updated, err := s.repo.Update(ctx, id, t)
	if err != nil {
		return model.StoredTask{}, err
	}

	if err := s.invalidate(ctx, id); err != nil {
		return model.StoredTask{}, err
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := s.invalidate(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskService) invalidate(ctx context.Context, id string) error {
	if !s.opts.InvalidateOnWrite {
		return nil
	}

	err := s.cache.Delete(ctx, cache.Key(s.opts.KeyPrefix, id))
	if err == nil {
		return nil
	}
	if !s.opts.FailOpen {
		return fmt.Errorf("invalidate task %s: %w", id, err)
	}
	s.logger.Warn("cache invalidation failed", zap.String("task_id", id), zap.Error(err))
	return nil
}

func (s *TaskService) validate(t *model.Task) error {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	return nil
}

// IsNotFound - удобная проверка для транспорта.
func IsNotFound(err error) bool {
	return errors.Is(err, repo.ErrorNotFound)
}
