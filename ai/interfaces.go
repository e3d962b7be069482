package ai

import (
	"context"

	"github.com/Nikkoola22/ATLAS/core"
)

// Completer sends an ordered list of role-tagged messages to a chat
// completion service and returns the text of the first choice.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete runs a single completion. It does not retry.
	// Returns an error on transport or HTTP failure.
	Complete(ctx context.Context, messages []core.Message, opts ...CompleteOption) (string, error)
}

// CompleteOptions holds per-call settings resolved from CompleteOption values.
type CompleteOptions struct {
	// DisableWebSearch asks the service to answer from the supplied messages only,
	// without open-domain augmentation.
	DisableWebSearch bool

	// Temperature overrides the configured sampling temperature when non-nil.
	Temperature *float64
}

// CompleteOption is a functional option for a single Complete call.
type CompleteOption func(*CompleteOptions)

// WithWebSearchDisabled disables open-domain augmentation for the call.
func WithWebSearchDisabled() CompleteOption {
	return func(o *CompleteOptions) {
		o.DisableWebSearch = true
	}
}

// WithCallTemperature overrides the sampling temperature for the call.
func WithCallTemperature(t float64) CompleteOption {
	return func(o *CompleteOptions) {
		o.Temperature = &t
	}
}

// ResolveCompleteOptions applies opts over the zero options.
func ResolveCompleteOptions(opts ...CompleteOption) CompleteOptions {
	var o CompleteOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Completer returns the chat completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
