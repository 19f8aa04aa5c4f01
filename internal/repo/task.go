package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-cache-service/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

type PgTaskRepo struct { // Репозиторий поверх PostgreSQL
	pool *pgxpool.Pool
}

func NewPgTaskRepo(pool *pgxpool.Pool) *PgTaskRepo {
	return &PgTaskRepo{
		pool: pool,
	}
}

func (r *PgTaskRepo) Create(ctx context.Context, t model.Task) (model.StoredTask, error) {
	var st model.StoredTask
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, status
	`, uuid.New(), t.Title, t.Description, string(t.Status)).Scan(
		&st.ID, &st.Title, &st.Description, &st.Status,
	)
	return st, r.mapError(err)
}

func (r *PgTaskRepo) Get(ctx context.Context, id string) (model.StoredTask, error) {
	uid, ok := parseID(id)
	if !ok {
		return model.StoredTask{}, ErrorNotFound
	}

	var st model.StoredTask
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, status
		FROM tasks
		WHERE id = $1
	`, uid).Scan(
		&st.ID, &st.Title, &st.Description, &st.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.StoredTask{}, ErrorNotFound
	}
	return st, err
}

// Update заменяет все поля. Если данные не изменились, строка не попадает под WHERE
// и результат неотличим от отсутствующей записи.
func (r *PgTaskRepo) Update(ctx context.Context, id string, t model.Task) (model.StoredTask, error) {
	uid, ok := parseID(id)
	if !ok {
		return model.StoredTask{}, ErrorNotFound
	}

	var st model.StoredTask
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, updated_at = now()
		WHERE id = $1
		  AND (title, description, status) IS DISTINCT FROM ($2, $3, $4)
		RETURNING id, title, description, status
	`, uid, t.Title, t.Description, string(t.Status)).Scan(
		&st.ID, &st.Title, &st.Description, &st.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.StoredTask{}, ErrorNotFound
	}
	return st, r.mapError(err)
}

func (r *PgTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	uid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", uid)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PgTaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}

func parseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}
