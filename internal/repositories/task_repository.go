package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"taskmasters/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository abstracts task persistence and sharing.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, ownerID int) ([]models.Task, error)
	GetTask(ctx context.Context, taskID int) (models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, taskID int, ownerID int) error
	ShareTask(ctx context.Context, taskID int, userID int) error
	ListSharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error)
}

// TaskRepo is a sqlx implementation of TaskRepository.
type TaskRepo struct {
	db *sqlx.DB
}

// NewTaskRepo constructs a TaskRepo.
func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// CreateTask stores a task for its owner.
func (r *TaskRepo) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var created models.Task
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO tasks (owner_id, name, date, time, priority, workload, completed)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, owner_id, name, date, time, priority, workload, completed, created_at`,
		task.OwnerID, task.Name, task.Date, task.Time, task.Priority, task.Workload, task.Completed).
		StructScan(&created)
	return created, err
}

// ListTasks returns the owner's tasks, newest first.
func (r *TaskRepo) ListTasks(ctx context.Context, ownerID int) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.SelectContext(ctx, &tasks,
		`SELECT id, owner_id, name, date, time, priority, workload, completed, created_at
         FROM tasks WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	return tasks, err
}

// GetTask fetches a task by id.
func (r *TaskRepo) GetTask(ctx context.Context, taskID int) (models.Task, error) {
	var task models.Task
	err := r.db.GetContext(ctx, &task,
		`SELECT id, owner_id, name, date, time, priority, workload, completed, created_at
         FROM tasks WHERE id=$1`, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	return task, err
}

// UpdateTask rewrites the mutable fields of an owned task.
func (r *TaskRepo) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var updated models.Task
	err := r.db.QueryRowxContext(ctx,
		`UPDATE tasks SET name=$1, date=$2, time=$3, priority=$4, workload=$5, completed=$6
         WHERE id=$7 AND owner_id=$8
         RETURNING id, owner_id, name, date, time, priority, workload, completed, created_at`,
		task.Name, task.Date, task.Time, task.Priority, task.Workload, task.Completed, task.ID, task.OwnerID).
		StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	return updated, err
}

// DeleteTask removes an owned task.
func (r *TaskRepo) DeleteTask(ctx context.Context, taskID int, ownerID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1 AND owner_id=$2`, taskID, ownerID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ShareTask makes a task visible to another user.
func (r *TaskRepo) ShareTask(ctx context.Context, taskID int, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_shares (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		taskID, userID)
	return err
}

// ListSharedTasks returns tasks friends shared with the user.
func (r *TaskRepo) ListSharedTasks(ctx context.Context, userID int) ([]models.SharedTask, error) {
	query := `SELECT t.id, t.owner_id, t.name, t.date, t.time, t.priority, t.workload, t.completed, t.created_at,
            u.username AS owner_username
        FROM task_shares ts
        JOIN tasks t ON t.id = ts.task_id
        JOIN users u ON u.id = t.owner_id
        WHERE ts.user_id=$1
        ORDER BY t.created_at DESC`
	tasks := []models.SharedTask{}
	err := r.db.SelectContext(ctx, &tasks, query, userID)
	return tasks, err
}
