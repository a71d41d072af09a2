package stockroom

import "log/slog"

const defaultInitialCapacity = 64

type config struct {
	initialCapacity int
	logger          *slog.Logger
}

// Option configures a storage at construction.
type Option func(*config)

func defaultConfig() config {
	return config{
		initialCapacity: defaultInitialCapacity,
		logger:          slog.Default(),
	}
}

// WithInitialCapacity presizes slot metadata and columns. Values below 2 are
// raised to 2 so doubling always makes progress.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		c.initialCapacity = max(n, 2)
	}
}

// WithLogger sets the structured logger used for query and replay events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
