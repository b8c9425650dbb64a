package sheetflat

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/header"
)

// ErrFileNotReadable indicates the input is missing or not a valid xlsx file.
var ErrFileNotReadable = errors.New("file not readable")

// ErrHeaderNotFound indicates a matching boundary strategy found no header row.
var ErrHeaderNotFound = header.ErrHeaderNotFound

// ErrMalformedMergeRange indicates a merge range with inverted bounds or one
// overlapping another.
var ErrMalformedMergeRange = header.ErrMalformedMerge

// ErrInvalidOptions indicates unusable Options.
var ErrInvalidOptions = errors.New("invalid options")

// Stage names a pipeline step for error reporting.
type Stage string

const (
	StageOptions  Stage = "options"
	StageOpen     Stage = "open"
	StageRead     Stage = "read"
	StageMerges   Stage = "merges"
	StageBoundary Stage = "boundary"
	StageWrite    Stage = "write"
)

// StageError represents a failure in one pipeline stage.
type StageError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s stage: %v", e.Path, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(path string, stage Stage, err error) *StageError {
	return &StageError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
