package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		in   string
		want Combo
	}{
		{"right", Combo{Key: "ARROWRIGHT"}},
		{"Enter", Combo{Key: "ENTER"}},
		{"a", Combo{Key: "A"}},
		{"ctrl+right", Combo{Modifiers: []Modifier{Ctrl}, Key: "ARROWRIGHT"}},
		{" Control + Shift + PgDn ", Combo{Modifiers: []Modifier{Ctrl, Shift}, Key: "PAGEDOWN"}},
		{"alt+win+f4", Combo{Modifiers: []Modifier{Alt, Win}, Key: "F4"}},
		{"esc", Combo{Key: "ESCAPE"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCombo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseComboErrors(t *testing.T) {
	for _, in := range []string{"", "  ", "ctrl+", "+right", "hyper+right"} {
		_, err := ParseCombo(in)
		assert.Error(t, err, in)
	}
}

func TestComboString(t *testing.T) {
	c, err := ParseCombo("ctrl+shift+right")
	require.NoError(t, err)
	assert.Equal(t, "CTRL+SHIFT+ARROWRIGHT", c.String())
}
