package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain serial", "A100", "A100"},
		{"bare wildcard", "%", `\%`},
		{"underscore", "A_1", `A\_1`},
		{"backslash doubled", `A\1`, `A\\1`},
		{"mixed", `%_\`, `\%\_\\`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
