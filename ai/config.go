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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the completion service provider.
type Config struct {
	// Host is the base URL of the OpenAI-compatible chat completions API.
	// Example: "https://api.perplexity.ai"
	Host string

	// Model is the model identifier sent with every request.
	// Example: "sonar-pro"
	Model string

	// APIKey is sent as a bearer token. Local services accept "none".
	APIKey string

	// Temperature is the default sampling temperature.
	// Default: 0.2
	Temperature float64

	// Timeout bounds every completion call.
	// Default: 60s
	Timeout time.Duration

	// RequestsPerSecond caps the outgoing request rate. Zero disables the limit.
	RequestsPerSecond float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRequestsPerSecond sets the outgoing request rate limit.
func WithRequestsPerSecond(rps float64) ConfigOption {
	return func(c *Config) {
		c.RequestsPerSecond = rps
	}
}

// DefaultConfig returns a Config pointing at the Perplexity API.
// The API key is left empty and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Host:        "https://api.perplexity.ai",
		Model:       "sonar-pro",
		Temperature: 0.2,
		Timeout:     60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("API_KEY")),
//	    WithRequestsPerSecond(2),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A host given as the full endpoint URL is cut back to its base,
// since the client appends /chat/completions itself.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.Host = strings.TrimSuffix(c.Host, "/")
	c.Host = strings.TrimSuffix(c.Host, "/chat/completions")
	c.Host = strings.TrimSuffix(c.Host, "/")
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("ai config: RequestsPerSecond cannot be negative")
	}
	return nil
}
