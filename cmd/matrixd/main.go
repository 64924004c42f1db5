package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyflow/matrixd/internal/scheduler"
	"github.com/studyflow/matrixd/internal/storage"
	"github.com/studyflow/matrixd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "matrixd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	tasks, err := repo.LoadTasks(context.Background())
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	// Fresh database: seed from the snapshot backup when one is configured.
	if len(tasks) == 0 && cfg.SnapshotPath != "" {
		if seeded := storage.ReadSnapshot(cfg.SnapshotPath); len(seeded) > 0 {
			tasks = seeded
			if err := repo.ReplaceTasks(context.Background(), tasks); err != nil {
				return fmt.Errorf("seed from snapshot: %w", err)
			}
		}
	}

	sched := scheduler.NewEngine(cfg.SchedulerBuffer)
	sched.Start()
	defer sched.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModelWithConfig(tasks, repo, sched, notifier, cfg)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
