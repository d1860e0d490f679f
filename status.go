package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	enabledStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// StatusBar receives undo/redo availability from the session and renders
// it as the status line affordances.
type StatusBar struct {
	canUndo bool
	canRedo bool
	styled  bool
}

func NewStatusBar(styled bool) *StatusBar {
	return &StatusBar{styled: styled}
}

func (s *StatusBar) SetAffordances(canUndo, canRedo bool) {
	s.canUndo = canUndo
	s.canRedo = canRedo
}

func (s *StatusBar) CanUndo() bool { return s.canUndo }
func (s *StatusBar) CanRedo() bool { return s.canRedo }

func (s *StatusBar) affordance(label string, enabled bool) string {
	text := "[" + label + "]"
	if !s.styled {
		if !enabled {
			return strings.Repeat("-", len(text))
		}
		return text
	}
	if enabled {
		return enabledStyle.Render(text)
	}
	return disabledStyle.Render(text)
}

func (s *StatusBar) Affordances() string {
	return s.affordance("undo", s.canUndo) + " " + s.affordance("redo", s.canRedo)
}

func (s *StatusBar) message(text string, isError bool) string {
	if text == "" {
		return ""
	}
	if isError {
		text = "ERROR: " + text
		if s.styled {
			return errorStyle.Render(text)
		}
		return text
	}
	if s.styled {
		return successStyle.Render(text)
	}
	return text
}

// historyPosition formats the history cursor as "index/last".
func historyPosition(h *History) string {
	return fmt.Sprintf("%d/%d", h.Index(), h.Len()-1)
}
