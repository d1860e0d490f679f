package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportPDF
	FileOpExportTXT
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

type SessionState int

const (
	StateIdle SessionState = iota
	StateBuilding
)

type EventKind int

const (
	EventPrimary EventKind = iota
	EventSecondary
	EventPointerMove
	EventUndo
	EventRedo
	EventClear
)

const (
	minShapeVertices     = 3
	defaultDoubleClickMS = 400
	appName              = "polysketch"
)

// Canvas glyphs
const (
	glyphEdge         = '*'
	glyphVertex       = 'o'
	glyphOpenEdge     = '+'
	glyphOpenVertex   = '@'
	glyphPreview      = '·'
	glyphPreviewPoint = 'x'
	glyphCursor       = '█'
)
