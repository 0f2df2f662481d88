package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatShortcutsHelpText(t *testing.T) {
	bindings := []shortcutBinding{
		{category: "Ref tree", display: "+", description: "Expand every node"},
		{category: "Ref tree", display: "-", description: "Collapse every node"},
		{category: "", display: "x", description: "ignored (no category)"},
		{category: "Other", display: "", description: "ignored (no display)"},
		{category: "General", display: "F5", description: "Reload refs"},
	}
	got := formatShortcutsHelpText(bindings)

	assert.Equal(t,
		"Ref tree\n  +: Expand every node\n  -: Collapse every node\n\nGeneral\n  F5: Reload refs",
		got)
	assert.NotContains(t, got, "ignored")
}

func TestFormatShortcutsHelpTextEmpty(t *testing.T) {
	assert.Empty(t, formatShortcutsHelpText(nil))
}
