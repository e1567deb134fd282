// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/kumade/internal/adapters/config"
	_ "go.trai.ch/kumade/internal/adapters/fs"
	_ "go.trai.ch/kumade/internal/adapters/logger"
	_ "go.trai.ch/kumade/internal/adapters/shell"
	_ "go.trai.ch/kumade/internal/adapters/telemetry"
	_ "go.trai.ch/kumade/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/kumade/internal/app"
	_ "go.trai.ch/kumade/internal/engine/scheduler"
)
