package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, config *Config) model {
	t.Helper()
	m, err := newModel(config, false)
	require.NoError(t, err)
	m.input.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	return m
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, key := range keys {
		m, _ = update(t, m, keyMsg(key))
	}
	return m
}

func TestModel_KeyboardDrawing(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m = press(t, m, "a", "l", "l", "l", "l", "a", "j", "j", "j", "j", "a")
	assert.Equal(t, StateBuilding, m.session.State())
	assert.Equal(t, "BUILD", m.modeString())

	m = press(t, m, "enter")
	shapes := m.session.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, []Point{{0, 0}, {4, 0}, {4, 4}}, shapes[0].Vertices)
	assert.Equal(t, "DRAW", m.modeString())

	m = press(t, m, "u")
	assert.Empty(t, m.session.Shapes())
	m = press(t, m, "U")
	assert.Len(t, m.session.Shapes(), 1)
}

func TestModel_CursorDragsPreview(t *testing.T) {
	m := newTestModel(t, defaultConfig())
	m = press(t, m, " ", "l", "l", "j")

	p, ok := m.session.Preview()
	require.True(t, ok)
	assert.Equal(t, Point{2, 1}, p)
}

func TestModel_MouseDrawing(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m, _ = update(t, m, click(2, 2))
	m, _ = update(t, m, click(8, 2))
	m, _ = update(t, m, motion(7, 6))
	p, ok := m.session.Preview()
	require.True(t, ok)
	assert.Equal(t, Point{7, 6}, p)

	m, _ = update(t, m, click(5, 6))
	m, _ = update(t, m, click(5, 6))

	shapes := m.session.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, []Point{{2, 2}, {8, 2}, {5, 6}}, shapes[0].Vertices)
	assert.Equal(t, 5, m.cursorX)
	assert.Equal(t, 6, m.cursorY)
}

func TestModel_ClickAndDragAddsOneVertex(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m, _ = update(t, m, click(5, 5))
	for x := 6; x <= 8; x++ {
		m, _ = update(t, m, drag(x, 5))
	}
	m, _ = update(t, m, release(8, 5))

	require.NotNil(t, m.session.InProgress())
	assert.Equal(t, []Point{{5, 5}}, m.session.InProgress().Vertices)
	assert.Equal(t, 2, m.session.History().Len())
	p, ok := m.session.Preview()
	require.True(t, ok)
	assert.Equal(t, Point{8, 5}, p)
}

func TestModel_MouseIgnoredOutsideDrawMode(t *testing.T) {
	m := newTestModel(t, defaultConfig())
	m = press(t, m, "?")
	m, _ = update(t, m, click(1, 1))
	assert.Nil(t, m.session.InProgress())
}

func TestModel_ClearNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, defaultConfig())
	m = press(t, m, "a", "l", "l", "a", "j", "j", "a", "enter")

	m = press(t, m, "c")
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Contains(t, m.View(), "Clear all shapes?")

	m = press(t, m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.session.Shapes(), 1)

	m = press(t, m, "c", "y")
	assert.Empty(t, m.session.Shapes())

	m = press(t, m, "u")
	assert.Len(t, m.session.Shapes(), 1)
}

func TestModel_ClearWithoutConfirmations(t *testing.T) {
	config := defaultConfig()
	config.Confirmations = false
	m := newTestModel(t, config)
	m = press(t, m, "a", "c")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.session.InProgress())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m, cmd := update(t, m, keyMsg("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)

	_, cmd = update(t, m, keyMsg("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	config := defaultConfig()
	config.Confirmations = false
	m = newTestModel(t, config)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ExportTXT(t *testing.T) {
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := newTestModel(t, config)

	m = press(t, m, "T")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, errNothingToExport.Error(), m.errorMessage)

	m = press(t, m, "a", "l", "l", "a", "j", "j", "a", "enter")
	m = press(t, m, "T")
	require.Equal(t, ModeFileInput, m.mode)
	assert.Equal(t, "polygons", m.filename)

	m = press(t, m, "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "backspace")
	m = press(t, m, "t", "r", "i")
	m = press(t, m, "enter")

	path := filepath.Join(config.SaveDirectory, "tri.txt")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Saved "+path, m.successMessage)
	assert.FileExists(t, path)

	m = press(t, m, "T", "backspace", "backspace", "backspace", "backspace", "backspace",
		"backspace", "backspace", "backspace", "t", "r", "i", "enter")
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmOverwriteFile, m.confirmAction)

	m = press(t, m, "n")
	assert.Equal(t, ModeFileInput, m.mode)
	m = press(t, m, "esc")
	assert.Equal(t, ModeNormal, m.mode)

	require.NoError(t, os.Remove(path))
}

func TestModel_ClipboardKey(t *testing.T) {
	orig := clipboardWrite
	clipboardWrite = func(string) error { return nil }
	defer func() { clipboardWrite = orig }()

	m := newTestModel(t, defaultConfig())
	m = press(t, m, "y")
	assert.Equal(t, errNothingToExport.Error(), m.errorMessage)

	m = press(t, m, "a", "y")
	assert.Empty(t, m.errorMessage)
	assert.Equal(t, "Copied shapes to clipboard", m.successMessage)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	view := m.View()
	assert.Contains(t, view, "------ ------")
	assert.Contains(t, view, "History: 0/0")
	assert.Contains(t, view, string(glyphCursor))

	m = press(t, m, "l", "a")
	view = m.View()
	assert.Contains(t, view, "Mode: BUILD")
	assert.Contains(t, view, "Vertices: 1")
	assert.Contains(t, view, "[undo] ------")

	m = press(t, m, "u")
	assert.Contains(t, m.View(), "------ [redo]")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m = press(t, m, "?")
	assert.True(t, m.help)
	assert.Contains(t, m.View(), "polysketch Help")

	m = press(t, m, "j")
	assert.Equal(t, 1, m.helpScroll)

	m = press(t, m, "esc")
	assert.False(t, m.help)
	assert.Equal(t, 0, m.helpScroll)
}

func TestModel_PanMode(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m = press(t, m, "z", "h", "h")
	assert.Equal(t, 2, m.panX)
	assert.Equal(t, 0, m.cursorX)
	assert.Contains(t, m.View(), "Mode: PAN")

	m = press(t, m, "a")
	require.NotNil(t, m.session.InProgress())
	assert.Equal(t, []Point{{2, 0}}, m.session.InProgress().Vertices)
}
