package main

import tea "github.com/charmbracelet/bubbletea"

func isNavigationKey(key string) bool {
	switch key {
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		return true
	}
	return false
}

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX += speed
	case "l", "right", "L", "shift+right":
		m.panX -= speed
	case "k", "up", "K", "shift+up":
		m.panY += speed
	case "j", "down", "J", "shift+down":
		m.panY -= speed
	}
	m.session.MovePointer(toPoint(m.worldCoords()))
	return *m
}

// handleCursorMove moves the cursor and drags the preview guide with it.
func (m *model) handleCursorMove(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	m.session.MovePointer(toPoint(m.worldCoords()))
	return *m
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
