// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// Completer implements ai.Completer using an OpenAI-compatible chat API.
type Completer struct {
	client      llms.Model
	temperature float64
	timeout     time.Duration
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: newSearchOptionsTransport(http.DefaultTransport),
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, err
	}

	c := &Completer{
		client:      client,
		temperature: config.Temperature,
		timeout:     config.Timeout,
		logger:      slog.Default().With("component", "openai-completer"),
	}
	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}
	return c, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends messages to the chat API and returns the first choice's content.
// The call is bounded by the configured timeout and waits on the rate limiter if one is set.
func (c *Completer) Complete(ctx context.Context, messages []core.Message, opts ...ai.CompleteOption) (string, error) {
	if len(messages) == 0 {
		return "", ai.ErrEmptyMessages
	}
	options := ai.ResolveCompleteOptions(opts...)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	if options.DisableWebSearch {
		ctx = withWebSearchDisabled(ctx)
	}

	temperature := c.temperature
	if options.Temperature != nil {
		temperature = *options.Temperature
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.MessageContent{
			Role: chatMessageType(msg.Role),
			Parts: []llms.ContentPart{
				llms.TextPart(msg.Content),
			},
		})
	}

	start := time.Now()
	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(temperature))
	if err != nil {
		c.logger.Error("failed to generate content", "messages", len(messages), "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model")
		return "", ai.ErrNoChoices
	}

	c.logger.Debug("completion done",
		"messages", len(messages),
		"webSearch", !options.DisableWebSearch,
		"elapsed", time.Since(start))
	return response.Choices[0].Content, nil
}

func chatMessageType(role core.Role) llms.ChatMessageType {
	switch role {
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
