package scheduler

import "go.trai.ch/kumade/internal/core/domain"

// SetState forces the run state.
// This is exported for testing purposes only.
func (s *Scheduler) SetState(state domain.RunState) {
	s.transition(state)
}
