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


// Package storage provides the document storage abstraction for ATLAS.
//
// The retrieval engine only depends on DocumentStore, which maps a
// (source, chapter) tuple to a body text. Bodies are read-only at query
// time; DocumentRepository adds the seeding and listing operations used by
// the command line tools.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep consumers decoupled from the
// backend:
//
//	store, err := memory.NewDocumentStore(docs)      // storage.DocumentRepository
//	repo, err := badger.NewDocumentRepository(b)     // storage.DocumentRepository
//
// # Implementations
//
//   - storage/memory: immutable in-process store built from the embedded corpus
//   - storage/badger: BadgerDB store seeded once by "atlas seed"
//
// Stored values are serialized in MUS format (mus-go).
package storage
