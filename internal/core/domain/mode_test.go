package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAnswerMode tests mode parsing and aliases
func TestParseAnswerMode(t *testing.T) {
	tests := []struct {
		input   string
		want    AnswerMode
		wantErr bool
	}{
		{"document-search", ModeDocumentSearch, false},
		{"search", ModeDocumentSearch, false},
		{"doc", ModeDocumentSearch, false},
		{"inquiry", ModeInquiry, false},
		{"ask", ModeInquiry, false},
		{"  Inquiry  ", ModeInquiry, false},
		{"", "", true},
		{"banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnswerMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestAnswerMode_Toggle tests switching between the two modes
func TestAnswerMode_Toggle(t *testing.T) {
	assert.Equal(t, ModeInquiry, ModeDocumentSearch.Toggle())
	assert.Equal(t, ModeDocumentSearch, ModeInquiry.Toggle())
}

// TestAnswerMode_Valid tests validity checks
func TestAnswerMode_Valid(t *testing.T) {
	assert.True(t, ModeDocumentSearch.Valid())
	assert.True(t, ModeInquiry.Valid())
	assert.False(t, AnswerMode("other").Valid())
}

// TestAnswerMode_Label tests the UI labels
func TestAnswerMode_Label(t *testing.T) {
	assert.Equal(t, "Document search", ModeDocumentSearch.Label())
	assert.Equal(t, "Inquiry", ModeInquiry.Label())
	assert.Equal(t, "Unknown", AnswerMode("other").Label())
	assert.NotEmpty(t, ModeDocumentSearch.Description())
	assert.NotEmpty(t, ModeInquiry.Description())
}
