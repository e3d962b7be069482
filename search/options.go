package search

import "log/slog"

// DefaultMaxSections is how many section ids the locator keeps.
const DefaultMaxSections = 3

type options struct {
	logger      *slog.Logger
	monitor     SearchMonitor
	maxSections int
}

func defaultOptions() options {
	return options{
		logger:      slog.Default(),
		monitor:     &noopMonitor{},
		maxSections: DefaultMaxSections,
	}
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// Option configures a Scorer, Locator, Loader or TwoStage.
type Option func(*options) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor notified at each step of a two-stage search.
// Nil restores the no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(o *options) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		o.monitor = monitor
		return nil
	}
}

// WithMaxSections caps the number of section ids kept by the locator.
// Default is DefaultMaxSections.
func WithMaxSections(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return ErrInvalidMaxSections
		}
		o.maxSections = n
		return nil
	}
}
