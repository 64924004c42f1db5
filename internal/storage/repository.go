package storage

import (
	"context"
	"errors"

	"github.com/studyflow/matrixd/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Repository persists the task collection. The engine works on whole
// collections, so ReplaceTasks is the primary write path; the per-task
// operations exist for callers that know exactly what changed.
type Repository interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	ReplaceTasks(ctx context.Context, tasks []model.Task) error

	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
}
