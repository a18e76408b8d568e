package store

import "context"

// RunRepository provides operations for managing stored runs.
type RunRepository interface {
	// SaveRun stores a complete run. The run's Info.Id must be set;
	// saving an existing id overwrites the stored run.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by id.
	// Returns ErrNotFound if no run with that id exists.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the index records of every stored run, newest
	// first; equal timestamps order by id.
	ListRuns(ctx context.Context) ([]RunInfo, error)

	// DeleteRun removes a run and its artifacts.
	// Returns ErrNotFound if no run with that id exists.
	DeleteRun(ctx context.Context, id string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
