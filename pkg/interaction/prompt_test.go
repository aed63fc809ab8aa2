// pkg/interaction/prompt_test.go

package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeYesNoInput(t *testing.T) {
	tests := []struct {
		in         string
		want       bool
		recognized bool
	}{
		{"y", true, true},
		{"Y", true, true},
		{"yes", true, true},
		{" YES ", true, true},
		{"n", false, true},
		{"no", false, true},
		{"", false, false},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeYesNoInput(tt.in)
		assert.Equal(t, tt.recognized, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}
