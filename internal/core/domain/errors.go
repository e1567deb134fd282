package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrTaskAlreadyExists is returned when a task is declared with a name that is already registered.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task or dependency was never declared.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrCycleDetected is returned when a task transitively depends on itself.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrNoDefaultTask is returned when no task names are requested and no default is configured.
	ErrNoDefaultTask = zerr.New("no default task configured")

	// ErrTaskExecutionFailed is returned when a task action fails during a run.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrTargetNotProduced is returned when a file task action completes without creating its target.
	ErrTargetNotProduced = zerr.New("target was not produced")

	// ErrRegistryFrozen is returned when the registry is mutated after execution started.
	ErrRegistryFrozen = zerr.New("registry is frozen")

	// ErrInvalidTask is returned when a task declaration violates a structural invariant.
	ErrInvalidTask = zerr.New("invalid task")

	// ErrConfigItemExists is returned when a config item is declared twice.
	ErrConfigItemExists = zerr.New("config item already exists")

	// ErrUnknownConfigItem is returned when a value is given for an undeclared config item.
	ErrUnknownConfigItem = zerr.New("unknown config item")

	// ErrRunInProgress is returned when an engine is asked to run while a run is still executing.
	ErrRunInProgress = zerr.New("run already in progress")

	// ErrTaskfileNotFound is returned when no task file exists in the directory or its parents.
	ErrTaskfileNotFound = zerr.New("task file not found")
)

// zerrInvalid builds an ErrInvalidTask carrying the reason and the task name.
func zerrInvalid(reason string, name InternedString) error {
	return zerr.With(zerr.Wrap(ErrInvalidTask, reason), "task", name.String())
}

// CycleError reports a dependency cycle. Path starts and ends with the same task name.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// Is reports whether target is ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// TaskExecutionError reports the task that aborted a run, its position in the resolved order
// and the underlying failure.
type TaskExecutionError struct {
	Task     string
	Position int
	Err      error
}

// Error implements the error interface.
func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("task %q (step %d) failed: %v", e.Task, e.Position+1, e.Err)
}

// Message returns the failure without the cause chain.
func (e *TaskExecutionError) Message() string {
	return fmt.Sprintf("task %q (step %d) failed", e.Task, e.Position+1)
}

// Unwrap returns the underlying failure.
func (e *TaskExecutionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTaskExecutionFailed.
func (e *TaskExecutionError) Is(target error) bool {
	return target == ErrTaskExecutionFailed
}
