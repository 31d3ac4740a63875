package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/taskboard/pkg/task"
)

// TaskRepository implements task.Repository backed by PostgreSQL (pgx).
// Every read/update/delete predicate pairs the record id with the owner
// id, so a task is invisible outside its owner.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) (*TaskRepository, error) {
	r := &TaskRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TaskRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('OPEN', 'IN_PROGRESS', 'DONE')),
	owner_id UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
`)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO tasks (id, title, description, status, owner_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, t.ID, t.Title, t.Description, t.Status, t.OwnerID, t.CreatedAt)
	return err
}

func (r *TaskRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, description, status, owner_id, created_at
FROM tasks WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	var t task.Task
	var created time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	t.CreatedAt = created.UTC()
	return t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f task.Filter, limit, offset int) ([]task.Task, error) {
	if limit <= 0 {
		limit = 50
	}
	// Both filters compose with AND; empty values match everything.
	var status task.Status
	if f.Status != nil {
		status = *f.Status
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, status, owner_id, created_at
FROM tasks
WHERE owner_id = $1
	AND ($2 = '' OR status = $2)
	AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
ORDER BY created_at DESC
LIMIT $4 OFFSET $5
`, ownerID, string(status), f.Search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []task.Task
	for rows.Next() {
		var t task.Task
		var created time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = created.UTC()
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) UpdateStatusForOwner(ctx context.Context, ownerID, id uuid.UUID, status task.Status) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE tasks SET status = $3 WHERE id = $1 AND owner_id = $2
`, id, ownerID, status)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *TaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
