package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandroc0sta/TaskManagerApp/app/client"
	"github.com/sandroc0sta/TaskManagerApp/app/config"
	"github.com/sandroc0sta/TaskManagerApp/app/tui"
)

func main() {
	apiURL := os.Getenv("TASKS_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	flag.StringVar(&apiURL, "api", apiURL, "base URL of the task store service")
	logPath := flag.String("log", "", "append client logs to this file")
	flag.Parse()

	var opts []client.Option
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		opts = append(opts, client.WithLogger(config.NewLogger(f, "tasks-client", "debug")))
	}

	tasks := client.NewTaskList(client.New(apiURL, opts...))

	p := tea.NewProgram(tui.New(tasks), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tasks:", err)
		os.Exit(1)
	}
}
