package domain

import "context"

// TaskKind distinguishes plain action tasks from tasks that produce a file.
type TaskKind int

const (
	// KindAction is a task that runs every time it is reached.
	KindAction TaskKind = iota
	// KindFileProduct is a task that produces TargetPath and is skipped while the target is fresh.
	KindFileProduct
)

// String returns the human-readable name of the kind.
func (k TaskKind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindFileProduct:
		return "file"
	default:
		return "unknown"
	}
}

// Action is the work a task performs. A nil Action does nothing.
type Action func(ctx context.Context) error

// Task represents a unit of work in the task graph.
// It uses InternedString for names and paths since they are repeated across dependency lists.
type Task struct {
	Name         InternedString
	Kind         TaskKind
	Action       Action
	Dependencies []InternedString

	// TargetPath is set only for KindFileProduct tasks.
	TargetPath InternedString
	// Sources are plain files, not tasks, whose modification times feed staleness.
	Sources []InternedString

	Help string
}

// IsFileProduct reports whether the task produces a file target.
func (t *Task) IsFileProduct() bool {
	return t.Kind == KindFileProduct
}

// Run invokes the task action, treating a nil action as a no-op.
func (t *Task) Run(ctx context.Context) error {
	if t.Action == nil {
		return nil
	}
	return t.Action(ctx)
}

// validate checks the structural invariants of a task that can be verified at declaration time.
func (t *Task) validate() error {
	if t.Name.IsZero() {
		return zerrInvalid("task name must not be empty", t.Name)
	}
	switch t.Kind {
	case KindAction:
		if !t.TargetPath.IsZero() {
			return zerrInvalid("action task must not declare a target path", t.Name)
		}
		if len(t.Sources) > 0 {
			return zerrInvalid("action task must not declare sources", t.Name)
		}
	case KindFileProduct:
		if t.TargetPath.IsZero() {
			return zerrInvalid("file task requires a target path", t.Name)
		}
	default:
		return zerrInvalid("unknown task kind", t.Name)
	}
	return nil
}
