// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Completer and ai.AIProvider
// for use in unit tests. The mocks allow tests to run without a completion
// service and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	completer := mock.NewMockCompleter().
//	    WithCompleteFunc(func(ctx context.Context, msgs []core.Message, opts ai.CompleteOptions) (string, error) {
//	        return "[temps_ch2_conges_annuels]", nil
//	    })
//
//	count := completer.CallCount()
//	call, _ := completer.LastCall()
//
// # Default Behavior
//
//   - MockCompleter: Returns the Reply field ("mock reply") and records every call
//   - MockProvider: Wraps a MockCompleter
package mock
