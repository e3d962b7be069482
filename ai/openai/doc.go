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


// Package openai provides the completion service implementation using OpenAI-compatible APIs.
//
// This package implements the ai.AIProvider interface using the langchaingo
// library. It targets the Perplexity chat completions API by default and works
// with any OpenAI-compatible server (Ollama, LocalAI, vLLM).
//
// When a call carries ai.WithWebSearchDisabled, an HTTP transport adds the
// Perplexity search controls (search_domain_filter, web_search, return_images,
// return_related_questions) to the outgoing request body.
//
// # Usage
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	reply, err := provider.Completer().Complete(ctx, messages, ai.WithWebSearchDisabled())
package openai
