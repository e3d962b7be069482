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

import (
	"fmt"
	"slices"
)

// ValidateSections validates corpus sections according to domain rules.
//
// Validation rules:
//   - ID must not be empty and must be unique across the corpus
//   - Title must not be empty
//   - Source must be one of the known sources
//   - A non-zero Chapter must be listed in sourceChapters[Source]
//
// NOT validated:
//   - Keywords (a section without keywords is only reachable through the locator)
//   - Summary (optional)
func ValidateSections(sections []Section, sourceChapters map[Source][]int) error {
	seen := make(map[string]bool, len(sections))
	for i := range sections {
		s := &sections[i]
		if s.ID == "" {
			return fmt.Errorf("%w: section %d: %w", ErrInvalidCorpus, i, ErrEmptySectionID)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidCorpus, ErrDuplicateSectionID, s.ID)
		}
		seen[s.ID] = true

		if s.Title == "" {
			return fmt.Errorf("%w: section %s: %w", ErrInvalidCorpus, s.ID, ErrEmptyTitle)
		}
		if !s.Source.Valid() {
			return fmt.Errorf("%w: section %s: %w %q", ErrInvalidCorpus, s.ID, ErrUnknownSource, s.Source)
		}
		if s.Chapter < 0 || (s.HasChapter() && !slices.Contains(sourceChapters[s.Source], s.Chapter)) {
			return fmt.Errorf("%w: section %s: %w %d in %s", ErrInvalidCorpus, s.ID, ErrUnknownChapter, s.Chapter, s.Source)
		}
	}
	return nil
}

// ValidateChapters validates the legacy chapter index.
func ValidateChapters(chapters []Chapter) error {
	seen := make(map[int]bool, len(chapters))
	for _, ch := range chapters {
		if seen[ch.ID] {
			return fmt.Errorf("%w: %w: %d", ErrInvalidCorpus, ErrDuplicateChapterID, ch.ID)
		}
		seen[ch.ID] = true
		if ch.Title == "" {
			return fmt.Errorf("%w: chapter %d: %w", ErrInvalidCorpus, ch.ID, ErrEmptyTitle)
		}
		if !ch.Source.Valid() {
			return fmt.Errorf("%w: chapter %d: %w %q", ErrInvalidCorpus, ch.ID, ErrUnknownSource, ch.Source)
		}
	}
	return nil
}

// ValidateMessage validates a conversation message.
func ValidateMessage(msg Message) error {
	if err := ValidateRole(msg.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if msg.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}
	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidRole, role)
}
