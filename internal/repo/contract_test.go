package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-cache-service/internal/model"
)

// runRepositoryContract проверяет поведение, общее для всех реализаций TaskRepository.
// missingID - корректный по форме, но отсутствующий идентификатор.
func runRepositoryContract(t *testing.T, r TaskRepository, missingID string) {
	ctx := context.Background()
	newTask := model.Task{Title: "New Task", Description: "This is a test task.", Status: model.StatusPending}

	t.Run("create assigns id", func(t *testing.T) {
		created, err := r.Create(ctx, newTask)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, newTask, created.Task)

		other, err := r.Create(ctx, newTask)
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, other.ID)
	})

	t.Run("get existing", func(t *testing.T) {
		created, err := r.Create(ctx, newTask)
		require.NoError(t, err)

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("get missing and malformed", func(t *testing.T) {
		_, err := r.Get(ctx, missingID)
		assert.ErrorIs(t, err, ErrorNotFound)

		_, err = r.Get(ctx, "999999")
		assert.ErrorIs(t, err, ErrorNotFound)

		_, err = r.Get(ctx, "")
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		created, err := r.Create(ctx, newTask)
		require.NoError(t, err)

		changed := model.Task{Title: "Updated Task", Description: "This task has been updated.", Status: model.StatusInProgress}
		updated, err := r.Update(ctx, created.ID, changed)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, changed, updated.Task)

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, changed, got.Task)
	})

	t.Run("no-op update reports not found", func(t *testing.T) {
		created, err := r.Create(ctx, newTask)
		require.NoError(t, err)

		_, err = r.Update(ctx, created.ID, newTask)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("update missing and malformed", func(t *testing.T) {
		_, err := r.Update(ctx, missingID, newTask)
		assert.ErrorIs(t, err, ErrorNotFound)

		_, err = r.Update(ctx, "not-an-id", newTask)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		created, err := r.Create(ctx, newTask)
		require.NoError(t, err)

		deleted, err := r.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = r.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrorNotFound)

		deleted, err = r.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted, "already deleted")
	})

	t.Run("delete malformed", func(t *testing.T) {
		deleted, err := r.Delete(ctx, "not-an-id")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
