package services

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

// Runs against a live server only, e.g.
// NEO4J_TEST_URI=neo4j://localhost:7687 NEO4J_TEST_PASSWORD=password go test ./app/services
func newNeo4jStore(t *testing.T) *Neo4jTaskService {
	t.Helper()
	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		t.Skip("NEO4J_TEST_URI not set")
	}

	ctx := context.Background()
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth("neo4j", os.Getenv("NEO4J_TEST_PASSWORD"), ""))
	require.NoError(t, err)
	require.NoError(t, driver.VerifyConnectivity(ctx))

	_, err = neo4j.ExecuteQuery(ctx, driver, "MATCH (n) WHERE n:Task OR n:TaskSequence DETACH DELETE n", nil, neo4j.EagerResultTransformer)
	require.NoError(t, err)

	store, err := NewNeo4jTaskService(ctx, driver)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })
	return store
}

func TestNeo4jTaskService_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newNeo4jStore(t)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	a, err := store.CreateTask(ctx, &models.Task{Title: "a"})
	require.NoError(t, err)
	b, err := store.CreateTask(ctx, &models.Task{Title: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, store.UpdateTask(ctx, a.ID, "a2", true))
	got, err := store.GetTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Task{ID: a.ID, Title: "a2", IsDone: true}, *got)

	assert.ErrorIs(t, store.UpdateTask(ctx, b.ID+100, "x", true), ErrTaskNotFound)

	require.NoError(t, store.DeleteTask(ctx, b.ID))
	assert.ErrorIs(t, store.DeleteTask(ctx, b.ID), ErrTaskNotFound)

	c, err := store.CreateTask(ctx, &models.Task{Title: "c"})
	require.NoError(t, err)
	assert.Greater(t, c.ID, b.ID)

	tasks, err = store.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{*got, *c}, tasks)
}
