package domain

// TaskStatus represents the lifecycle state of a single task within a run.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting for its turn in the resolved order.
	StatusPending TaskStatus = "pending"
	// StatusRunning indicates the task action is executing.
	StatusRunning TaskStatus = "running"
	// StatusCompleted indicates the task action finished successfully.
	StatusCompleted TaskStatus = "completed"
	// StatusUpToDate indicates a file task was skipped because its target is fresh.
	StatusUpToDate TaskStatus = "up-to-date"
	// StatusFailed indicates the task action failed.
	StatusFailed TaskStatus = "failed"
)

// IsTerminal reports whether the status is final for the current run.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusUpToDate, StatusFailed:
		return true
	default:
		return false
	}
}

// RunState is the state of a single top-level run.
type RunState string

const (
	// RunIdle indicates the engine has not started a run yet.
	RunIdle RunState = "idle"
	// RunResolving indicates the requested tasks are being resolved into an order.
	RunResolving RunState = "resolving"
	// RunExecuting indicates the resolved tasks are running.
	RunExecuting RunState = "executing"
	// RunCompleted indicates every task in the last run succeeded or was up to date.
	RunCompleted RunState = "completed"
	// RunFailed indicates the last run stopped on a resolution or task error.
	RunFailed RunState = "failed"
)

var runTransitions = map[RunState][]RunState{
	RunIdle:      {RunResolving},
	RunResolving: {RunExecuting, RunFailed},
	RunExecuting: {RunCompleted, RunFailed},
	RunCompleted: {RunResolving},
	RunFailed:    {RunResolving},
}

// CanTransition reports whether moving from s to next is a legal step.
// Terminal states may start over, since the same engine serves several invocations.
func (s RunState) CanTransition(next RunState) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
