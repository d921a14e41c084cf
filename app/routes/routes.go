package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sandroc0sta/TaskManagerApp/app/controllers"
	"github.com/sandroc0sta/TaskManagerApp/app/middleware"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, taskController *controllers.TaskController) {
	// mux skips Use middleware when no route matches, so the fallback
	// handlers are wrapped explicitly.
	router.Use(middleware.Metrics)
	router.NotFoundHandler = middleware.Metrics(http.NotFoundHandler())
	router.MethodNotAllowedHandler = middleware.Metrics(http.HandlerFunc(methodNotAllowed))

	router.HandleFunc("/tasks", taskController.GetTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", taskController.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}", taskController.GetTaskByID).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{taskID}", taskController.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}", taskController.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/healthz", taskController.Health).Methods(http.MethodGet)
	router.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// NewHandler builds the full server handler: routes wrapped in request-id
// and access-log middleware.
func NewHandler(taskController *controllers.TaskController, logger *logrus.Entry) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, taskController)

	var handler http.Handler = router
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
