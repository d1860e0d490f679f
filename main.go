package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath string
	logLevel   string
	logFile    string
	version    = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Sketch polygons in the terminal",
	Long: `polysketch is a terminal polygon sketcher. Place vertices with the
mouse or the cursor, close a shape with a double-click or Enter, and undo or
redo every edit.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSketch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("polysketch v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSketch(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("log_file", cmd.Root().PersistentFlags().Lookup("log-file")); err != nil {
		return err
	}

	config, err := loadConfig(v, configPath)
	if err != nil {
		return err
	}
	closer, err := configureLogging(config.LogLevel, config.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	m, err := newModel(config, true)
	if err != nil {
		return err
	}
	logger.Info("starting", "version", version, "config", configPath)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newModel(config *Config, styled bool) (model, error) {
	canvas := NewCanvas()
	status := NewStatusBar(styled)
	session, err := NewSession(canvas, status)
	if err != nil {
		return model{}, err
	}
	return model{
		mode:    ModeNormal,
		config:  config,
		session: session,
		canvas:  canvas,
		status:  status,
		input:   NewInputSource(config.Keymap, config.DoubleClick),
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		if m.help || m.mode != ModeNormal {
			return m, nil
		}
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg.String()), nil
		}
		switch m.mode {
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg.String())
		default:
			return m.handleNormalKey(msg.String())
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) tea.Model {
	ev, ok := m.input.Mouse(msg, m.panX, m.panY)
	if !ok {
		return m
	}
	m.cursorX, m.cursorY = msg.X, msg.Y
	m.ensureCursorInBounds()
	if ev.Kind != EventPointerMove {
		m.errorMessage = ""
		m.successMessage = ""
	}
	m.session.Dispatch(ev)
	return m
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	if ev, ok := m.input.Key(key, m.worldCoords()); ok {
		m.errorMessage = ""
		m.successMessage = ""
		if ev.Kind == EventClear && m.config.Confirmations && !m.canvas.IsEmpty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return m, nil
		}
		m.session.Dispatch(ev)
		return m, nil
	}

	if isNavigationKey(key) {
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}

	switch key {
	case "ctrl+c", "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = !m.help
	case "z":
		m.zPanMode = !m.zPanMode
	case "esc":
		m.zPanMode = false
		m.errorMessage = ""
		m.successMessage = ""
	case "S":
		m.startExport(FileOpExportPNG)
	case "P":
		m.startExport(FileOpExportPDF)
	case "T":
		m.startExport(FileOpExportTXT)
	case "y":
		m.successMessage = ""
		if err := m.copyShapesToClipboard(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.errorMessage = ""
			m.successMessage = "Copied shapes to clipboard"
		}
	}
	return m, nil
}

func (m *model) startExport(op FileOperation) {
	if m.canvas.IsEmpty() {
		m.errorMessage = errNothingToExport.Error()
		return
	}
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = "polygons"
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.filename)
		if name == "" {
			m.errorMessage = "filename is empty"
			return m, nil
		}
		ext := exportExtension(m.fileOp)
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			name += ext
		}
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		m.finishExport(path)
		return m, nil
	case "backspace":
		if len(m.filename) > 0 {
			runes := []rune(m.filename)
			m.filename = string(runes[:len(runes)-1])
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	case tea.KeySpace:
		m.filename += " "
	}
	return m, nil
}

func (m *model) finishExport(path string) {
	if err := m.runExport(m.fileOp, path); err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Saved %s", path)
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmClear:
			m.session.Clear()
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			m.finishExport(m.pendingPath)
			m.pendingPath = ""
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		} else {
			m.mode = ModeNormal
		}
		m.pendingPath = ""
	}
	return m, nil
}

func (m model) handleHelpKey(key string) tea.Model {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		maxScroll := len(helpLines) - m.canvasHeight()
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	renderWidth := m.width
	if renderWidth < 1 {
		renderWidth = 1
	}
	renderHeight := m.canvasHeight()

	lines := m.canvas.Lines(renderWidth, renderHeight, m.panX, m.panY)
	if m.mode != ModeFileInput && m.cursorY >= 0 && m.cursorY < len(lines) {
		line := []rune(lines[m.cursorY])
		if m.cursorX >= 0 && m.cursorX < len(line) {
			line[m.cursorX] = glyphCursor
			lines[m.cursorY] = string(line)
		}
	}

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		status := fmt.Sprintf("Mode: FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", exportLabel(m.fileOp), m.filename)
		if m.errorMessage != "" {
			status += " | " + m.status.message(m.errorMessage, true)
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = "Clear all shapes? (y/n)"
		case ConfirmQuit:
			message = "Quit polysketch? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	modeStr := m.modeString()
	if m.zPanMode {
		modeStr = "PAN"
	}
	world := m.worldCoords()
	status := fmt.Sprintf("Mode: %s | Cursor: (%d,%d) | Shapes: %d", modeStr, world.X, world.Y, len(m.canvas.shapes))
	if m.canvas.inProgress != nil {
		status += fmt.Sprintf(" | Vertices: %d", len(m.canvas.inProgress.Vertices))
	}
	status += fmt.Sprintf(" | History: %s %s", historyPosition(m.session.History()), m.status.Affordances())
	switch {
	case m.errorMessage != "":
		status += " | " + m.status.message(m.errorMessage, true)
	case m.successMessage != "":
		status += " | " + m.status.message(m.successMessage, false)
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	if m.mode == ModeNormal && m.session.State() == StateBuilding {
		return "BUILD"
	}
	switch m.mode {
	case ModeNormal:
		return "DRAW"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"polysketch Help",
	"===============",
	"",
	"Drawing:",
	"--------",
	"  Space/a          Place a vertex at the cursor (starts a shape when idle)",
	"  Enter            Close the current shape (needs at least 3 vertices)",
	"  Left click       Place a vertex under the mouse",
	"  Double click     Close the current shape",
	"  c                Clear all shapes",
	"",
	"History:",
	"--------",
	"  u/Ctrl+Z         Undo (while a shape is open, one vertex at a time)",
	"  U/Ctrl+Y         Redo",
	"                   A closed shape undoes in a single step",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the screen",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  z                Toggle pan mode (direction keys pan the view)",
	"",
	"Export:",
	"-------",
	"  S                Export as PNG image",
	"  P                Export as PDF",
	"  T                Export as text",
	"  y                Copy shapes to the clipboard as JSON",
	"",
	"General:",
	"  Esc              Clear messages / leave pan mode",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.canvasHeight()
	startLine := m.helpScroll
	if startLine > len(helpLines)-1 {
		startLine = len(helpLines) - 1
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
