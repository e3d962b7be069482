package core

import (
	"errors"
	"testing"
)

func TestValidateSections(t *testing.T) {
	chapters := map[Source][]int{SourceTemps: {1, 2, 4}}

	tests := []struct {
		name     string
		sections []Section
		wantErr  error
	}{
		{
			name: "valid sections",
			sections: []Section{
				{ID: "temps_ch2_conges_annuels", Title: "Congés annuels", Source: SourceTemps, Chapter: 2},
				{ID: "formation_cpf", Title: "CPF", Source: SourceFormation},
			},
			wantErr: nil,
		},
		{
			name: "valid section without keywords",
			sections: []Section{
				{ID: "teletravail_general", Title: "Télétravail", Source: SourceTeletravail},
			},
			wantErr: nil,
		},
		{
			name: "temps section without chapter",
			sections: []Section{
				{ID: "temps_general", Title: "Temps", Source: SourceTemps},
			},
			wantErr: nil,
		},
		{
			name:     "empty id",
			sections: []Section{{Title: "x", Source: SourceTemps}},
			wantErr:  ErrEmptySectionID,
		},
		{
			name: "duplicate id",
			sections: []Section{
				{ID: "a", Title: "x", Source: SourceTemps},
				{ID: "a", Title: "y", Source: SourceFormation},
			},
			wantErr: ErrDuplicateSectionID,
		},
		{
			name:     "empty title",
			sections: []Section{{ID: "a", Source: SourceTemps}},
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "unknown source",
			sections: []Section{{ID: "a", Title: "x", Source: "paie"}},
			wantErr:  ErrUnknownSource,
		},
		{
			name:     "chapter beyond source",
			sections: []Section{{ID: "a", Title: "x", Source: SourceTemps, Chapter: 5}},
			wantErr:  ErrUnknownChapter,
		},
		{
			name:     "chapter without a body",
			sections: []Section{{ID: "a", Title: "x", Source: SourceTemps, Chapter: 3}},
			wantErr:  ErrUnknownChapter,
		},
		{
			name:     "chapter on unsubdivided source",
			sections: []Section{{ID: "a", Title: "x", Source: SourceFormation, Chapter: 1}},
			wantErr:  ErrUnknownChapter,
		},
		{
			name:     "negative chapter",
			sections: []Section{{ID: "a", Title: "x", Source: SourceTemps, Chapter: -1}},
			wantErr:  ErrUnknownChapter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSections(tt.sections, chapters)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSections() unexpected error = %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateSections() expected error %v, got nil", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSections() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidCorpus) {
				t.Errorf("ValidateSections() error should wrap ErrInvalidCorpus, got %v", err)
			}
		})
	}
}

func TestValidateChapters(t *testing.T) {
	tests := []struct {
		name     string
		chapters []Chapter
		wantErr  error
	}{
		{
			name:     "valid",
			chapters: []Chapter{{ID: 1, Title: "Le temps de travail", Source: SourceTemps}, {ID: 5, Title: "Formation", Source: SourceFormation}},
		},
		{
			name:     "duplicate id",
			chapters: []Chapter{{ID: 1, Title: "a", Source: SourceTemps}, {ID: 1, Title: "b", Source: SourceTemps}},
			wantErr:  ErrDuplicateChapterID,
		},
		{
			name:     "empty title",
			chapters: []Chapter{{ID: 1, Source: SourceTemps}},
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "unknown source",
			chapters: []Chapter{{ID: 1, Title: "a"}},
			wantErr:  ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChapters(tt.chapters)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChapters() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChapters() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{name: "user", msg: Message{Role: RoleUser, Content: "Bonjour"}},
		{name: "assistant", msg: Message{Role: RoleAssistant, Content: "Bonjour"}},
		{name: "system", msg: Message{Role: RoleSystem, Content: "Règles"}},
		{name: "empty content", msg: Message{Role: RoleUser}, wantErr: ErrEmptyContent},
		{name: "invalid role", msg: Message{Role: "bot", Content: "x"}, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.msg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMessage() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMessage() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("ValidateMessage() error should wrap ErrInvalidMessage, got %v", err)
			}
		})
	}
}
