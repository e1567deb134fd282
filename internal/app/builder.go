package app

import (
	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/zerr"
)

// Log formats accepted by ConfigureLogging.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// configurableLogger is implemented by loggers whose verbosity and format can change at runtime.
type configurableLogger interface {
	SetVerbose(verbose bool)
	SetJSON(enabled bool)
}

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, telemetry ports.Telemetry) *Components {
	return &Components{
		App:       app,
		Logger:    logger,
		Telemetry: telemetry,
	}
}

// ConfigureLogging applies the global logging flags.
func (c *Components) ConfigureLogging(verbose bool, format string) error {
	if format != LogFormatText && format != LogFormatJSON {
		return zerr.With(zerr.New("unsupported log format"), "format", format)
	}

	logger, ok := c.Logger.(configurableLogger)
	if !ok {
		return nil
	}
	logger.SetVerbose(verbose)
	logger.SetJSON(format == LogFormatJSON)
	return nil
}

// Close flushes the progress recording.
func (c *Components) Close() error {
	if c.Telemetry == nil {
		return nil
	}
	return c.Telemetry.Close()
}
