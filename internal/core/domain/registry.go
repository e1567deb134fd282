package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Registry holds every task declared for one invocation, keyed by unique name.
// It is populated by the loader and frozen once execution starts.
type Registry struct {
	tasks       map[InternedString]Task
	order       []InternedString
	defaultTask InternedString
	frozen      bool
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[InternedString]Task),
	}
}

// Declare adds a task to the registry.
// It returns an error if a task with the same name already exists, if the task is malformed,
// or if the registry has been frozen.
func (r *Registry) Declare(t *Task) error {
	if r.Frozen() {
		return zerr.With(zerr.Wrap(ErrRegistryFrozen, ""), "task", t.Name.String())
	}
	if err := t.validate(); err != nil {
		return err
	}
	if _, exists := r.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, ""), "task", t.Name.String())
	}

	task := *t
	task.Dependencies = dedupe(t.Dependencies)
	task.Sources = slices.Clone(t.Sources)
	r.tasks[task.Name] = task
	r.order = append(r.order, task.Name)
	return nil
}

// DeclareActionTask declares a task that runs every time it is reached.
func (r *Registry) DeclareActionTask(name string, action Action, deps ...string) error {
	return r.Declare(&Task{
		Name:         NewInternedString(name),
		Kind:         KindAction,
		Action:       action,
		Dependencies: InternAll(deps),
	})
}

// DeclareFileTask declares a task that produces targetPath.
func (r *Registry) DeclareFileTask(name, targetPath string, action Action, deps ...string) error {
	return r.Declare(&Task{
		Name:         NewInternedString(name),
		Kind:         KindFileProduct,
		Action:       action,
		Dependencies: InternAll(deps),
		TargetPath:   NewInternedString(targetPath),
	})
}

// SetDefault configures the task that runs when no names are requested.
// The task does not need to be declared yet; it is looked up when a run starts.
func (r *Registry) SetDefault(name string) error {
	if r.Frozen() {
		return zerr.With(zerr.Wrap(ErrRegistryFrozen, ""), "task", name)
	}
	if name == "" {
		return zerr.Wrap(ErrInvalidTask, "default task name must not be empty")
	}
	r.defaultTask = NewInternedString(name)
	return nil
}

// DefaultTask returns the configured default task name, if any.
func (r *Registry) DefaultTask() (InternedString, bool) {
	return r.defaultTask, !r.defaultTask.IsZero()
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, error) {
	task, ok := r.tasks[NewInternedString(name)]
	if !ok {
		return Task{}, zerr.With(zerr.Wrap(ErrTaskNotFound, ""), "task", name)
	}
	return task, nil
}

// LookupTarget returns the file task whose target path equals path.
func (r *Registry) LookupTarget(path string) (Task, bool) {
	target := NewInternedString(path)
	for _, name := range r.order {
		task := r.tasks[name]
		if task.IsFileProduct() && task.TargetPath == target {
			return task, true
		}
	}
	return Task{}, false
}

// AllNames returns the names of all registered tasks, sorted.
func (r *Registry) AllNames() []string {
	names := make([]string, 0, len(r.order))
	for _, name := range r.order {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Tasks yields the registered tasks in declaration order.
func (r *Registry) Tasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range r.order {
			if !yield(r.tasks[name]) {
				return
			}
		}
	}
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}

// Freeze rejects all further declarations.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) get(name InternedString) (Task, bool) {
	task, ok := r.tasks[name]
	return task, ok
}

// dedupe drops repeated names while keeping the first occurrence in place.
func dedupe(names []InternedString) []InternedString {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[InternedString]struct{}, len(names))
	res := make([]InternedString, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	return res
}
