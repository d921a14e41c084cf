package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

var _ TaskStore = (*SQLTaskService)(nil)

// SQLTaskService keeps tasks in a single-file SQLite database.
type SQLTaskService struct {
	db *gorm.DB
}

// NewSQLTaskService opens (or creates) the database at path and makes sure
// the tasks table exists.
func NewSQLTaskService(path string) (*SQLTaskService, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return nil, fmt.Errorf("create tasks table: %w", err)
	}

	return &SQLTaskService{db: db}, nil
}

// ListTasks retrieves all tasks in insertion order.
func (s *SQLTaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task by its id.
func (s *SQLTaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &task, nil
}

// CreateTask inserts a new row and returns it with the assigned id.
func (s *SQLTaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	row := models.Task{Title: task.Title, IsDone: task.IsDone}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &row, nil
}

// UpdateTask overwrites title and done flag in place.
func (s *SQLTaskService) UpdateTask(ctx context.Context, id int64, title string, isDone bool) error {
	// A map keeps gorm from skipping zero values such as isDone=false.
	result := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "is_done": isDone})
	if result.Error != nil {
		return fmt.Errorf("update task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update task %d: %w", id, ErrTaskNotFound)
	}
	return nil
}

// DeleteTask removes the row with the given id.
func (s *SQLTaskService) DeleteTask(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete task %d: %w", id, ErrTaskNotFound)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLTaskService) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
