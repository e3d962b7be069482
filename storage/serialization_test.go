package storage

import (
	"errors"
	"testing"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "temps chapter",
			doc: &core.Document{
				Source:  core.SourceTemps,
				Chapter: 2,
				Title:   "Les congés",
				Body:    "Chaque agent a droit à 25 jours de congés annuels.",
			},
		},
		{
			name: "unsubdivided source",
			doc:  &core.Document{Source: core.SourceTeletravail, Title: "Télétravail", Body: "Jusqu'à 2 jours par semaine."},
		},
		{
			name: "empty body",
			doc:  &core.Document{Source: core.SourceFormation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, decoded)
		})
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	data := MarshalDocument(&core.Document{Source: core.SourceTemps, Chapter: 1, Title: "t", Body: "body"})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", data[:len(data)-2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSerializationFailed))
		})
	}
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(&core.Document{Source: core.SourceTemps, Chapter: 3}))
	assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	assert.ErrorIs(t, ValidateDocument(&core.Document{Source: "paie"}), core.ErrUnknownSource)
	assert.ErrorIs(t, ValidateDocument(&core.Document{Source: core.SourceTemps, Chapter: -1}), core.ErrUnknownChapter)
}
