package trend

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRunes int
	}{
		{
			name:      "short string unchanged",
			input:     "a brief description",
			wantRunes: 19,
		},
		{
			name:      "ascii cut at the limit",
			input:     strings.Repeat("x", 800),
			wantRunes: MaxDescriptionLen,
		},
		{
			name:      "multi-byte rune straddling the limit",
			input:     strings.Repeat("a", MaxDescriptionLen-1) + "é" + strings.Repeat("b", 50),
			wantRunes: MaxDescriptionLen,
		},
		{
			name:      "cjk counts characters not bytes",
			input:     strings.Repeat("日", 600),
			wantRunes: MaxDescriptionLen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateDescription(tt.input)

			assert.Equal(t, tt.wantRunes, utf8.RuneCountInString(got))
			assert.True(t, utf8.ValidString(got))
			assert.True(t, strings.HasPrefix(tt.input, got))
		})
	}
}
