package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/boiler/boiler/internal/render"
)

var writeClipboard = clipboard.WriteAll

// copyContext puts the rendered context document on the system clipboard.
func copyContext(doc string) tea.Cmd {
	return func() tea.Msg {
		if doc == "" {
			return statusMsg("No context to copy")
		}
		if err := writeClipboard(doc); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied context to clipboard")
	}
}

func applyChanges(apply func() ([]render.Change, error)) tea.Cmd {
	return func() tea.Msg {
		changes, err := apply()
		return appliedMsg{changes: changes, err: err}
	}
}
