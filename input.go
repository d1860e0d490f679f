package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Keymap lists the key strings (as reported by tea.KeyMsg.String) bound to
// each drawing event.
type Keymap struct {
	Undo      []string
	Redo      []string
	Primary   []string
	Secondary []string
	Clear     []string
}

func DefaultKeymap() Keymap {
	return Keymap{
		Undo:      []string{"u", "ctrl+z"},
		Redo:      []string{"U", "ctrl+y"},
		Primary:   []string{" ", "a"},
		Secondary: []string{"enter"},
		Clear:     []string{"c"},
	}
}

// parseKeyList splits a comma separated binding list. A literal "space"
// stands for the space bar.
func parseKeyList(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, ",") {
		key := strings.TrimSpace(part)
		switch {
		case key == "":
			continue
		case strings.EqualFold(key, "space"):
			key = " "
		}
		keys = append(keys, key)
	}
	return keys
}

func hasKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// InputSource turns terminal key and mouse messages into session events.
// Two left clicks on the same cell within the double-click window count as
// a secondary action.
type InputSource struct {
	keymap      Keymap
	doubleClick time.Duration
	now         func() time.Time

	lastClick time.Time
	lastCell  point
	armed     bool
}

func NewInputSource(keymap Keymap, doubleClick time.Duration) *InputSource {
	if doubleClick <= 0 {
		doubleClick = defaultDoubleClickMS * time.Millisecond
	}
	return &InputSource{
		keymap:      keymap,
		doubleClick: doubleClick,
		now:         time.Now,
	}
}

// Key maps a key press to an event. cursor is the world position the
// primary action applies to.
func (in *InputSource) Key(key string, cursor point) (Event, bool) {
	switch {
	case hasKey(in.keymap.Undo, key):
		return Event{Kind: EventUndo}, true
	case hasKey(in.keymap.Redo, key):
		return Event{Kind: EventRedo}, true
	case hasKey(in.keymap.Primary, key):
		in.armed = false
		return Event{Kind: EventPrimary, Point: toPoint(cursor)}, true
	case hasKey(in.keymap.Secondary, key):
		return Event{Kind: EventSecondary}, true
	case hasKey(in.keymap.Clear, key):
		return Event{Kind: EventClear}, true
	}
	return Event{}, false
}

// Mouse maps a mouse message to an event. panX and panY convert the screen
// cell into world coordinates. Only a left press places a vertex; motion
// with a button held is a pointer move like any other motion.
func (in *InputSource) Mouse(msg tea.MouseMsg, panX, panY int) (Event, bool) {
	cell := point{X: msg.X + panX, Y: msg.Y + panY}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		now := in.now()
		if in.armed && cell == in.lastCell && now.Sub(in.lastClick) <= in.doubleClick {
			in.armed = false
			return Event{Kind: EventSecondary}, true
		}
		in.armed = true
		in.lastCell = cell
		in.lastClick = now
		return Event{Kind: EventPrimary, Point: toPoint(cell)}, true
	case msg.Action == tea.MouseActionMotion:
		return Event{Kind: EventPointerMove, Point: toPoint(cell)}, true
	}
	return Event{}, false
}

func toPoint(p point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}
