package main

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	zPanMode       bool
	panX           int
	panY           int
	mode           Mode
	help           bool
	helpScroll     int
	fileOp         FileOperation
	filename       string
	pendingPath    string
	confirmAction  ConfirmAction
	errorMessage   string
	successMessage string
	config         *Config
	session        *Session
	canvas         *Canvas
	status         *StatusBar
	input          *InputSource
}

// point is a terminal cell in world coordinates.
type point struct {
	X, Y int
}
