package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sandroc0sta/TaskManagerApp/app/config"
	"github.com/sandroc0sta/TaskManagerApp/app/controllers"
	"github.com/sandroc0sta/TaskManagerApp/app/routes"
)

const shutdownTimeout = 5 * time.Second

func main() {
	confPath := flag.String("conf", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		config.NewLogger(os.Stdout, "tasks", "info").WithError(err).Error("failed to load config")
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, "tasks", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.WithError(err).Error("task store service failed")
		os.Exit(1)
	}
}

// run opens the store and serves until ctx is cancelled. The store is
// closed only after every in-flight request has finished.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Entry) error {
	store, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"addr":   ln.Addr().String(),
		"driver": cfg.Store.Driver,
	}).Info("task store service starting")

	handler := routes.NewHandler(controllers.NewTaskController(store, logger), logger)
	if err := serve(ctx, ln, handler); err != nil {
		return err
	}

	logger.Info("task store service stopped")
	return nil
}

// serve blocks until ctx is cancelled and the server has drained.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		drained <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-drained
}
