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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCorpus indicates the corpus data failed validation.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrEmptySectionID indicates a section has no identifier.
	ErrEmptySectionID = errors.New("section id cannot be empty")

	// ErrDuplicateSectionID indicates two sections share an identifier.
	ErrDuplicateSectionID = errors.New("duplicate section id")

	// ErrEmptyTitle indicates a section or chapter has no title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrUnknownSource indicates a source tag outside the known set.
	ErrUnknownSource = errors.New("unknown source")

	// ErrUnknownChapter indicates a chapter number that does not resolve in its source.
	ErrUnknownChapter = errors.New("unknown chapter")

	// ErrDuplicateChapterID indicates two legacy chapters share an identifier.
	ErrDuplicateChapterID = errors.New("duplicate chapter id")

	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")
)
