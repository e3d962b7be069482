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


// Package search answers questions from the internal policy corpus.
//
// Two strategies implement Retriever:
//   - Scorer ranks the legacy chapter index by weighted keyword matches and
//     returns the body of the single best chapter, without any remote call.
//   - TwoStage sends a compact section index to a completion service to
//     locate the relevant sections, loads only their bodies, then asks the
//     service to answer from that text alone.
//
// Normalize and SynonymTable are shared by both and by the corpus tooling.
package search
