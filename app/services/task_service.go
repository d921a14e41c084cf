package services

import (
	"context"
	"errors"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

// ErrTaskNotFound is returned when no task has the requested id.
var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the persistence contract shared by all task backends.
type TaskStore interface {
	// ListTasks returns every stored task ordered by id.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// GetTask returns the task with the given id.
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// CreateTask stores a new task. Any id on the input is ignored.
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// UpdateTask replaces the title and done flag of an existing task.
	UpdateTask(ctx context.Context, id int64, title string, isDone bool) error

	// DeleteTask removes a task permanently.
	DeleteTask(ctx context.Context, id int64) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
