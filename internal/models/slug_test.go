package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "Website Revamp",
			want:  "website-revamp",
		},
		{
			name:  "already lowercase",
			input: "backend",
			want:  "backend",
		},
		{
			name:  "collapses repeated separators",
			input: "Data  --  Science!!",
			want:  "data-science",
		},
		{
			name:  "trims leading and trailing separators",
			input: "  AI / ML Platform  ",
			want:  "ai-ml-platform",
		},
		{
			name:  "keeps digits",
			input: "Q3 2025 Roadmap",
			want:  "q3-2025-roadmap",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only separators",
			input: "!!!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
