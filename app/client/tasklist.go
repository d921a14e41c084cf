package client

import (
	"context"
	"strings"
	"sync"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

// API is the subset of the store API the task list needs. *Client satisfies it.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string, isDone bool) (models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskList is the client-side copy of the store's tasks. It only changes
// through Load, Add, Toggle and Delete. The lock is never held across a
// network call.
type TaskList struct {
	api API

	mu    sync.Mutex
	tasks []models.Task
}

// NewTaskList returns an empty TaskList backed by api. Call Load to fill it.
func NewTaskList(api API) *TaskList {
	return &TaskList{api: api}
}

// Load replaces the local list with the server's.
func (l *TaskList) Load(ctx context.Context) error {
	tasks, err := l.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.tasks = tasks
	l.mu.Unlock()
	return nil
}

// Add creates a task from title and appends the stored copy. Blank titles
// are ignored and report false with no error.
func (l *TaskList) Add(ctx context.Context, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}

	created, err := l.api.CreateTask(ctx, title, false)
	if err != nil {
		return false, err
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, created)
	l.mu.Unlock()
	return true, nil
}

// Toggle flips the done flag locally, then sends the task to the server.
// The local flip stays even if the request fails.
func (l *TaskList) Toggle(ctx context.Context, id int64) error {
	l.mu.Lock()
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return ErrNotFound
	}
	l.tasks[i].IsDone = !l.tasks[i].IsDone
	task := l.tasks[i]
	l.mu.Unlock()

	return l.api.UpdateTask(ctx, task)
}

// Delete asks the server to remove the task, then drops it locally
// whatever the outcome.
func (l *TaskList) Delete(ctx context.Context, id int64) error {
	err := l.api.DeleteTask(ctx, id)

	l.mu.Lock()
	if i := l.indexOf(id); i >= 0 {
		l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	}
	l.mu.Unlock()
	return err
}

// Tasks returns a snapshot of the local list.
func (l *TaskList) Tasks() []models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *TaskList) indexOf(id int64) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
