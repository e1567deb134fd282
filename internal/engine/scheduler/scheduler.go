// Package scheduler implements the task execution engine.
package scheduler

import (
	"context"
	"sync"

	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler runs the resolved tasks of a registry one at a time, in dependency order.
// A Scheduler may serve several sequential runs but never concurrent ones.
type Scheduler struct {
	fs        ports.FileSystem
	telemetry ports.Telemetry
	tracer    ports.Tracer
	logger    ports.Logger
	staleness *StalenessPolicy

	mu         sync.RWMutex
	state      domain.RunState
	taskStatus map[domain.InternedString]domain.TaskStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	fs ports.FileSystem,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		fs:         fs,
		telemetry:  telemetry,
		tracer:     tracer,
		logger:     logger,
		staleness:  NewStalenessPolicy(fs),
		state:      domain.RunIdle,
		taskStatus: make(map[domain.InternedString]domain.TaskStatus),
	}
}

// State returns the state of the current or last run.
func (s *Scheduler) State() domain.RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Statuses returns a snapshot of the task statuses of the current or last run.
func (s *Scheduler) Statuses() map[string]domain.TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make(map[string]domain.TaskStatus, len(s.taskStatus))
	for name, status := range s.taskStatus {
		statuses[name.String()] = status
	}
	return statuses
}

// Run resolves roots against registry and executes the resulting order.
// With no roots, the registry's default task is run. The registry is frozen for the rest of
// its lifetime. The first failing task aborts the run with a *domain.TaskExecutionError.
func (s *Scheduler) Run(ctx context.Context, registry *domain.Registry, roots []string) error {
	if err := s.begin(); err != nil {
		return err
	}

	registry.Freeze()

	if len(roots) == 0 {
		name, ok := registry.DefaultTask()
		if !ok {
			s.transition(domain.RunFailed)
			return domain.ErrNoDefaultTask
		}
		roots = []string{name.String()}
	}

	order, err := domain.NewResolver(registry).Resolve(roots)
	if err != nil {
		s.transition(domain.RunFailed)
		return err
	}

	names := make([]string, len(order))
	for i, task := range order {
		names[i] = task.Name.String()
		s.updateStatus(task.Name, domain.StatusPending)
	}

	ctx, span := s.tracer.Start(ctx, "run", ports.WithAttribute("run.tasks", len(order)))
	defer span.End()
	s.tracer.EmitPlan(ctx, names)

	s.transition(domain.RunExecuting)

	for i := range order {
		if err := s.executeTask(ctx, registry, i, &order[i]); err != nil {
			span.RecordError(err)
			s.transition(domain.RunFailed)
			return err
		}
	}

	s.transition(domain.RunCompleted)
	return nil
}

// begin moves the engine into the resolving state and resets per-run bookkeeping.
func (s *Scheduler) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanTransition(domain.RunResolving) {
		return zerr.With(zerr.Wrap(domain.ErrRunInProgress, ""), "state", string(s.state))
	}

	s.state = domain.RunResolving
	clear(s.taskStatus)
	return nil
}

func (s *Scheduler) transition(next domain.RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
}

func (s *Scheduler) updateStatus(name domain.InternedString, status domain.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// settled reports whether name already reached a terminal status in this run.
// The status map doubles as the execution memo.
func (s *Scheduler) settled(name domain.InternedString) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[name].IsTerminal()
}

func (s *Scheduler) executeTask(
	ctx context.Context,
	registry *domain.Registry,
	position int,
	task *domain.Task,
) error {
	if s.settled(task.Name) {
		return nil
	}

	fail := func(err error) error {
		s.updateStatus(task.Name, domain.StatusFailed)
		return &domain.TaskExecutionError{Task: task.Name.String(), Position: position, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	name := task.Name.String()
	ctx, span := s.tracer.Start(ctx, name,
		ports.WithAttribute("task.kind", task.Kind.String()),
		ports.WithAttribute("task.position", position),
	)
	defer span.End()

	ctx, vertex := s.telemetry.Record(ctx, name, ports.WithKind(task.Kind.String()))

	stale, err := s.staleness.IsStale(registry, task)
	if err != nil {
		span.RecordError(err)
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		return fail(err)
	}

	if !stale {
		s.logger.Debug("[task] " + name + " is up to date")
		span.SetAttribute("task.up_to_date", true)
		vertex.Log(domain.LogLevelDebug, task.TargetPath.String()+" is up to date")
		vertex.Cached()
		vertex.Complete(nil)
		s.updateStatus(task.Name, domain.StatusUpToDate)
		return nil
	}

	s.logger.Debug("[task] " + name)
	s.updateStatus(task.Name, domain.StatusRunning)

	err = task.Run(ctx)
	if err == nil && task.IsFileProduct() {
		err = s.verifyTarget(task)
	}
	if err != nil {
		span.RecordError(err)
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		return fail(err)
	}

	vertex.Complete(nil)
	s.updateStatus(task.Name, domain.StatusCompleted)
	return nil
}

// verifyTarget checks that a file task's action created its target.
func (s *Scheduler) verifyTarget(task *domain.Task) error {
	target := task.TargetPath.String()
	exists, err := s.fs.Exists(target)
	if err != nil {
		return err
	}
	if !exists {
		return zerr.With(zerr.Wrap(domain.ErrTargetNotProduced, ""), "path", target)
	}
	return nil
}
