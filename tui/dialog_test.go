package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmDialog(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		accepted bool
	}{
		{"yes key", []string{"y"}, true},
		{"no key", []string{"n"}, false},
		{"escape", []string{"esc"}, false},
		{"enter defaults to yes", []string{"enter"}, true},
		{"move then enter", []string{"right", "enter"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newConfirmDialog("Warning", "Proceed?")
			for _, k := range tt.keys {
				d.Update(keyMsg(k))
			}
			assert.True(t, d.closed)
			assert.Equal(t, tt.accepted, d.result.accepted)
		})
	}
}

func TestInputDialogTrimsValue(t *testing.T) {
	d := newInputDialog("Input", "Enter username:", false, false, nil)
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  alice ")})
	d.Update(keyMsg("enter"))

	assert.True(t, d.closed)
	assert.True(t, d.result.accepted)
	assert.Equal(t, "alice", d.result.value)
}

func TestInputDialogSecretKeepsSpaces(t *testing.T) {
	d := newInputDialog("Password", "Enter new password:", true, false, nil)
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" p@ss ")})
	assert.NotContains(t, d.View(80), "p@ss")

	d.Update(keyMsg("enter"))
	assert.Equal(t, " p@ss ", d.result.value)
}

func TestInputDialogEmpty(t *testing.T) {
	required := newInputDialog("Input", "Enter username:", false, false, nil)
	required.Update(keyMsg("enter"))
	assert.True(t, required.closed)
	assert.False(t, required.result.accepted)

	optional := newInputDialog("Date", "Enter new date (MM-DD-YYYY):", false, true, nil)
	optional.Update(keyMsg("enter"))
	assert.True(t, optional.closed)
	assert.True(t, optional.result.accepted)
	assert.Empty(t, optional.result.value)
}

func TestInputDialogValidation(t *testing.T) {
	d := newInputDialog("Date", "Enter new date:", false, true, func(s string) error {
		if s != "01-02-2024" {
			return errors.New("invalid date")
		}
		return nil
	})

	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bad")})
	d.Update(keyMsg("enter"))
	assert.False(t, d.closed)
	assert.Contains(t, d.View(80), "invalid date")

	d.input.SetValue("01-02-2024")
	d.Update(keyMsg("enter"))
	assert.True(t, d.closed)
	assert.Equal(t, "01-02-2024", d.result.value)
}

func TestMessageDialogDismiss(t *testing.T) {
	d := newMessageDialog("Result", "ok", false)
	d.Update(keyMsg("x"))
	assert.False(t, d.closed)

	d.Update(keyMsg("enter"))
	assert.True(t, d.closed)
}

func TestWrapMessage(t *testing.T) {
	long := strings.Repeat("a", 50)
	assert.Equal(t, strings.Repeat("a", 9)+"…", wrapMessage(long, 10))

	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "line"
	}
	out := wrapMessage(strings.Join(lines, "\r\n"), 0)
	assert.Len(t, strings.Split(out, "\n"), 31)
	assert.Contains(t, out, "10 more lines in the log")
}
