// Package slog provides logging decorators for lodestone services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lodestone"
)

// Ensure LoggingDefinitionSource implements lodestone.DefinitionSource.
var _ lodestone.DefinitionSource = (*LoggingDefinitionSource)(nil)

// LoggingDefinitionSource wraps a DefinitionSource with logging.
type LoggingDefinitionSource struct {
	next   lodestone.DefinitionSource
	logger *slog.Logger
}

// NewLoggingDefinitionSource creates a new LoggingDefinitionSource.
func NewLoggingDefinitionSource(next lodestone.DefinitionSource, logger *slog.Logger) *LoggingDefinitionSource {
	return &LoggingDefinitionSource{next: next, logger: logger}
}

// Definitions delegates to the wrapped source and logs the operation.
func (s *LoggingDefinitionSource) Definitions(ctx context.Context, name string) (set lodestone.DefinitionSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("definitions load",
			"name", name,
			"count", len(set),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Definitions(ctx, name)
}

// List delegates to the wrapped source and logs at debug level.
func (s *LoggingDefinitionSource) List(ctx context.Context) (names []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("definitions list",
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.List(ctx)
}
