package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sandroc0sta/TaskManagerApp/app/middleware"
	"github.com/sandroc0sta/TaskManagerApp/app/models"
	"github.com/sandroc0sta/TaskManagerApp/app/services"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Store  services.TaskStore
	Logger *logrus.Entry
}

// NewTaskController creates a new TaskController.
func NewTaskController(store services.TaskStore, logger *logrus.Entry) *TaskController {
	return &TaskController{Store: store, Logger: logger}
}

// GetTasks handles GET /tasks.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Store.ListTasks(r.Context())
	if err != nil {
		c.fail(w, r, "list tasks", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		c.fail(w, r, "decode task", err)
		return
	}

	newTask, err := c.Store.CreateTask(r.Context(), &task)
	if err != nil {
		c.fail(w, r, "create task", err)
		return
	}

	c.log(r).WithField("task_id", newTask.ID).Info("task created")
	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", newTask.ID))
	writeJSON(w, http.StatusCreated, newTask)
}

// GetTaskByID handles GET /tasks/{taskID}.
func (c *TaskController) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	task, err := c.Store.GetTask(r.Context(), taskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		c.fail(w, r, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{taskID}.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var updates models.Task
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		c.fail(w, r, "decode task", err)
		return
	}

	err := c.Store.UpdateTask(r.Context(), taskID, updates.Title, updates.IsDone)
	if errors.Is(err, services.ErrTaskNotFound) {
		c.log(r).WithField("task_id", taskID).Warn("task not found for update")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		c.fail(w, r, "update task", err)
		return
	}

	c.log(r).WithField("task_id", taskID).Info("task updated")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseTaskID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err := c.Store.DeleteTask(r.Context(), taskID)
	if errors.Is(err, services.ErrTaskNotFound) {
		c.log(r).WithField("task_id", taskID).Warn("task not found for deletion")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		c.fail(w, r, "delete task", err)
		return
	}

	c.log(r).WithField("task_id", taskID).Info("task deleted")
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz.
func (c *TaskController) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// A path id that is not an integer cannot name a stored task.
func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["taskID"], 10, 64)
	return id, err == nil
}

func (c *TaskController) log(r *http.Request) *logrus.Entry {
	return c.Logger.WithFields(logrus.Fields{
		"component":  "task_controller",
		"request_id": middleware.GetRequestID(r.Context()),
	})
}

// fail logs err and answers with a generic 500.
func (c *TaskController) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	c.log(r).WithError(err).Error(op + " failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
