package mock

import (
	"context"
	"sync"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/core"
)

// Call records the arguments of one Complete call.
type Call struct {
	Messages []core.Message
	Options  ai.CompleteOptions
}

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Complete returns Reply.
	CompleteFunc func(ctx context.Context, messages []core.Message, opts ai.CompleteOptions) (string, error)

	// Reply is the default answer when CompleteFunc is nil.
	Reply string

	mu    sync.Mutex
	calls []Call
}

// NewMockCompleter creates a mock completer answering with a fixed reply.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{Reply: "mock reply"}
}

// WithCompleteFunc sets the behavior of Complete and returns the mock for chaining.
func (m *MockCompleter) WithCompleteFunc(fn func(ctx context.Context, messages []core.Message, opts ai.CompleteOptions) (string, error)) *MockCompleter {
	m.CompleteFunc = fn
	return m
}

// WithReply sets the default reply and returns the mock for chaining.
func (m *MockCompleter) WithReply(reply string) *MockCompleter {
	m.Reply = reply
	return m
}

// Complete records the call and returns the injected result.
func (m *MockCompleter) Complete(ctx context.Context, messages []core.Message, opts ...ai.CompleteOption) (string, error) {
	options := ai.ResolveCompleteOptions(opts...)

	m.mu.Lock()
	m.calls = append(m.calls, Call{
		Messages: append([]core.Message(nil), messages...),
		Options:  options,
	})
	fn := m.CompleteFunc
	reply := m.Reply
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages, options)
	}
	return reply, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls.
func (m *MockCompleter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// LastCall returns the most recent call, or false if there was none.
func (m *MockCompleter) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears the recorded calls.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
