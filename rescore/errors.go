package rescore

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when the retry attempt count is not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrPipelineRequired is returned when no pipeline is provided.
	ErrPipelineRequired = errors.New("pipeline required")

	// ErrRepositoryRequired is returned when no run repository is provided.
	ErrRepositoryRequired = errors.New("run repository required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
