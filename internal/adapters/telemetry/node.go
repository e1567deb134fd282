package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kumade/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry.tracer"

// instrumentationName identifies spans produced by this tool.
const instrumentationName = "go.trai.ch/kumade"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewOTelTracer(instrumentationName), nil
		},
	})
}
