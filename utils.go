package main

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func (m *model) getPanOffset() (int, int) {
	return m.panX, m.panY
}

func (m *model) worldCoords() point {
	panX, panY := m.getPanOffset()
	return point{X: m.cursorX + panX, Y: m.cursorY + panY}
}

func (m *model) canvasHeight() int {
	// Leave room for status line
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	maxY := m.height - 2
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) copyShapesToClipboard() error {
	data, err := m.canvas.JSON()
	if err != nil {
		return err
	}
	if err := clipboardWrite(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	logger.Info("copied drawing to clipboard", "bytes", len(data))
	return nil
}
