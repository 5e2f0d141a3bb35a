//go:build !windows

package desktop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputUnsupported(t *testing.T) {
	d := Desktop{}
	assert.ErrorIs(t, d.PressKey("right"), errors.ErrUnsupported)
	assert.ErrorIs(t, d.Hotkey("ctrl+right"), errors.ErrUnsupported)
	assert.ErrorIs(t, d.Click(1, 1), errors.ErrUnsupported)
	assert.ErrorIs(t, d.Scroll(1, 1, -3), errors.ErrUnsupported)
	_, _, err := d.Position()
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.False(t, d.Activate("Kindle"))
	assert.Empty(t, d.Titles())
}

func TestHotkeyRejectsBadCombo(t *testing.T) {
	err := Desktop{}.Hotkey("hyper+right")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errors.ErrUnsupported)
}
