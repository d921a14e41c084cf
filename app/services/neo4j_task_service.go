package services

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

var _ TaskStore = (*Neo4jTaskService)(nil)

// Neo4jTaskService stores tasks as (:Task) nodes. Integer ids come from a
// single (:TaskSequence) counter node so they are never reused.
type Neo4jTaskService struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jTaskService creates the constraints the service relies on.
func NewNeo4jTaskService(ctx context.Context, driver neo4j.DriverWithContext) (*Neo4jTaskService, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, stmt := range []string{
		"CREATE CONSTRAINT task_id IF NOT EXISTS FOR (t:Task) REQUIRE t.id IS UNIQUE",
		"CREATE CONSTRAINT task_sequence_name IF NOT EXISTS FOR (s:TaskSequence) REQUIRE s.name IS UNIQUE",
	} {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return nil, fmt.Errorf("create neo4j constraint: %w", err)
		}
	}

	return &Neo4jTaskService{driver: driver}, nil
}

// ListTasks retrieves all tasks ordered by id.
func (s *Neo4jTaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task) "+
				"RETURN t.id AS id, t.title AS title, t.isDone AS isDone "+
				"ORDER BY t.id",
			nil,
		)
		if err != nil {
			return nil, err
		}

		tasks := make([]models.Task, 0)
		for res.Next(ctx) {
			tasks = append(tasks, taskFromRecord(res.Record()))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return result.([]models.Task), nil
}

// GetTask retrieves a single task by its id.
func (s *Neo4jTaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"RETURN t.id AS id, t.title AS title, t.isDone AS isDone",
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			task := taskFromRecord(res.Record())
			return &task, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if result == nil {
		return nil, fmt.Errorf("get task %d: %w", id, ErrTaskNotFound)
	}

	return result.(*models.Task), nil
}

// CreateTask allocates the next id from the sequence node and creates the task.
func (s *Neo4jTaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MERGE (s:TaskSequence {name: 'tasks'}) "+
				"ON CREATE SET s.current = 0 "+
				"SET s.current = s.current + 1 "+
				"CREATE (t:Task {id: s.current, title: $title, isDone: $isDone}) "+
				"RETURN t.id AS id, t.title AS title, t.isDone AS isDone",
			map[string]any{
				"title":  task.Title,
				"isDone": task.IsDone,
			},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		created := taskFromRecord(record)
		return &created, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return result.(*models.Task), nil
}

// UpdateTask replaces the title and done flag of an existing task.
func (s *Neo4jTaskService) UpdateTask(ctx context.Context, id int64, title string, isDone bool) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	found, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"SET t.title = $title, t.isDone = $isDone "+
				"RETURN t.id",
			map[string]any{
				"id":     id,
				"title":  title,
				"isDone": isDone,
			},
		)
		if err != nil {
			return false, err
		}
		return res.Next(ctx), res.Err()
	})
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if !found.(bool) {
		return fmt.Errorf("update task %d: %w", id, ErrTaskNotFound)
	}
	return nil
}

// DeleteTask deletes a task node and its relationships.
func (s *Neo4jTaskService) DeleteTask(ctx context.Context, id int64) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	deleted, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) DETACH DELETE t",
			map[string]any{"id": id},
		)
		if err != nil {
			return 0, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return 0, err
		}
		return summary.Counters().NodesDeleted(), nil
	})
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if deleted.(int) == 0 {
		return fmt.Errorf("delete task %d: %w", id, ErrTaskNotFound)
	}
	return nil
}

// Close closes the driver.
func (s *Neo4jTaskService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func taskFromRecord(record *neo4j.Record) models.Task {
	task := models.Task{ID: record.Values[0].(int64)}
	if title, ok := record.Values[1].(string); ok {
		task.Title = title
	}
	if isDone, ok := record.Values[2].(bool); ok {
		task.IsDone = isDone
	}
	return task
}
