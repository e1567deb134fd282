package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kumade/internal/core/domain"
)

func TestRunState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.RunState
		want     bool
	}{
		{domain.RunIdle, domain.RunResolving, true},
		{domain.RunIdle, domain.RunExecuting, false},
		{domain.RunResolving, domain.RunFailed, true},
		{domain.RunResolving, domain.RunExecuting, true},
		{domain.RunResolving, domain.RunCompleted, false},
		{domain.RunExecuting, domain.RunCompleted, true},
		{domain.RunExecuting, domain.RunFailed, true},
		{domain.RunCompleted, domain.RunResolving, true},
		{domain.RunFailed, domain.RunExecuting, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusRunning.IsTerminal())
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.True(t, domain.StatusUpToDate.IsTerminal())
	assert.True(t, domain.StatusFailed.IsTerminal())
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "INFO", domain.LogLevel(99).String())
}
