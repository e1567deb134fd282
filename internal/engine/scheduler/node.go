package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kumade/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kumade/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kumade/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kumade/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/kumade/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FileSystemNodeID,
			progrock.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(fileSystem, recorder, tracer, log), nil
		},
	})
}
