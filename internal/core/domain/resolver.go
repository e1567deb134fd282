package domain

import "go.trai.ch/zerr"

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// Resolver linearizes the transitive dependency closure of requested tasks.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the tasks reachable from roots in execution order.
// Dependencies are visited depth-first in declaration order and always precede their dependents.
// Roots share one done-set, so a task reached from several roots or paths appears exactly once.
func (r *Resolver) Resolve(roots []string) ([]Task, error) {
	var (
		order []Task
		path  []InternedString
	)
	state := make(map[InternedString]visitState)

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		task, ok := r.registry.get(name)
		if !ok {
			return r.missing(name, path)
		}

		state[name] = inProgress
		path = append(path, name)

		for _, dep := range task.Dependencies {
			switch state[dep] {
			case inProgress:
				return newCycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			case done:
			}
		}

		state[name] = done
		path = path[:len(path)-1]
		order = append(order, task)
		return nil
	}

	for _, root := range roots {
		name := NewInternedString(root)
		if state[name] == done {
			continue
		}
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (r *Resolver) missing(name InternedString, path []InternedString) error {
	err := zerr.With(zerr.Wrap(ErrTaskNotFound, ""), "task", name.String())
	if len(path) > 0 {
		err = zerr.With(err, "required_by", path[len(path)-1].String())
	}
	return err
}

// newCycleError cuts the DFS path at the first occurrence of dep and closes the loop.
func newCycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		cycle = append(cycle, node.String())
	}
	cycle = append(cycle, dep.String())
	return &CycleError{Path: cycle}
}
