package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/tactics-console/internal/rulesfeed"
	"github.com/jwebster45206/tactics-console/internal/services/events"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxLogLines = 200

// ConsoleUI is the BubbleTea model that renders the menu projector as a
// menu bar. It owns no menu state of its own beyond the cursor.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	projector  *menu.Projector
	controller *offlineController // nil when a rules engine is connected
	shortcuts  map[string][]menu.CommandID
	logger     *slog.Logger

	logViewport viewport.Model
	logLines    []string

	activeMenu int
	cursor     int
	open       bool

	ready  bool
	width  int
	height int

	showQuitModal bool
}

// rulesAppliedMsg is sent by the rules feed after it changed the projector.
type rulesAppliedMsg struct {
	msgType rulesfeed.MessageType
}

var menuBarStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("235")).
	Foreground(lipgloss.Color("255"))

var menuTitleStyle = lipgloss.NewStyle().
	Padding(0, 1)

var activeMenuTitleStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("205")).
	Bold(true)

var dropdownStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)

var itemStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

var disabledItemStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var selectedItemStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("205")).
	Bold(true)

var submenuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("86")) // green

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")). // pink
	Bold(true)

var promptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2).
	Background(lipgloss.Color("235")).
	Foreground(lipgloss.Color("255"))

var modalTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")).
	Bold(true).
	Align(lipgloss.Center)

var titleCaser = cases.Title(language.English)

func NewConsoleUI(p *menu.Projector, controller *offlineController, shortcuts map[string][]menu.CommandID, logger *slog.Logger) ConsoleUI {
	vp := viewport.New(60, 10)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		projector:   p,
		controller:  controller,
		shortcuts:   shortcuts,
		logger:      logger,
		logViewport: vp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

// items returns the commands of the active menu in display order.
func (m ConsoleUI) items() []menu.Command {
	menus := m.projector.Menus()
	if m.activeMenu < 0 || m.activeMenu >= len(menus) {
		return nil
	}
	title := menus[m.activeMenu]
	var out []menu.Command
	for _, cmd := range m.projector.Commands() {
		if cmd.Menu == title {
			out = append(out, cmd)
		}
	}
	return out
}

func (m ConsoleUI) selected() (menu.Command, bool) {
	items := m.items()
	if !m.open || m.cursor < 0 || m.cursor >= len(items) {
		return menu.Command{}, false
	}
	return items[m.cursor], true
}

func (m *ConsoleUI) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.refreshLog()
}

func (m *ConsoleUI) refreshLog() {
	width := m.logViewport.Width
	if width <= 0 {
		width = 60
	}
	var content strings.Builder
	for _, line := range m.logLines {
		content.WriteString(wordwrap.String(line, width) + "\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// dispatch reports a command to the projector's listeners if it is enabled.
func (m *ConsoleUI) dispatch(cmd menu.Command, input tea.Msg) {
	if !cmd.Enabled {
		m.appendLog(fmt.Sprintf("%s is disabled", cmd.Label))
		return
	}
	m.projector.Dispatch(menu.ActionEvent{Command: cmd.ID, Input: input})
	m.appendLog(fmt.Sprintf("→ %s (%s)", cmd.Label, cmd.ID))
}

// dispatchShortcut runs the first enabled command bound to key.
func (m *ConsoleUI) dispatchShortcut(key string, input tea.Msg) bool {
	ids, ok := m.shortcuts[key]
	if !ok {
		return false
	}
	for _, id := range ids {
		if cmd, ok := m.projector.Command(id); ok && cmd.Enabled {
			m.dispatch(cmd, input)
			return true
		}
	}
	m.appendLog(fmt.Sprintf("nothing enabled on %q", key))
	return true
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(msg.Height/3, 3)
		m.ready = true
		m.refreshLog()

	case rulesAppliedMsg:
		// The projector has already changed; the next View shows it.
		m.logger.Debug("Redraw after rules message", "type", msg.msgType)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, vpCmd
}

func (m ConsoleUI) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menus := m.projector.Menus()

	switch msg.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
		return m, nil
	case tea.KeyEsc:
		if m.open {
			m.open = false
			return m, nil
		}
		m.showQuitModal = true
		return m, nil
	case tea.KeyLeft:
		m.activeMenu = (m.activeMenu - 1 + len(menus)) % len(menus)
		m.cursor = 0
		return m, nil
	case tea.KeyRight:
		m.activeMenu = (m.activeMenu + 1) % len(menus)
		m.cursor = 0
		return m, nil
	case tea.KeyDown:
		if !m.open {
			m.open = true
			m.cursor = 0
		} else if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyUp:
		if m.open && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyEnter:
		if !m.open {
			m.open = true
			m.cursor = 0
			return m, nil
		}
		if cmd, ok := m.selected(); ok {
			m.dispatch(cmd, msg)
			m.open = false
		}
		return m, nil
	case tea.KeyTab:
		if m.controller != nil {
			next := m.controller.stepPhase()
			m.appendLog(fmt.Sprintf("phase → %s", next))
		}
		return m, nil
	case tea.KeyCtrlY:
		if cmd, ok := m.selected(); ok {
			if err := clipboard.WriteAll(string(cmd.ID)); err != nil {
				m.logger.Warn("Clipboard copy failed", "error", err)
				m.appendLog("clipboard unavailable")
			} else {
				m.appendLog(fmt.Sprintf("copied %s", cmd.ID))
			}
		}
		return m, nil
	}

	key := msg.String()
	if m.dispatchShortcut(key, msg) {
		return m, nil
	}

	if m.controller != nil {
		switch key {
		case "e":
			m.appendLog(fmt.Sprintf("unit selected: %t", m.controller.toggleUnit()))
		case "t":
			m.appendLog(fmt.Sprintf("target visible: %t", m.controller.toggleTarget()))
		case "c":
			m.appendLog(fmt.Sprintf("fire choice: %t", m.controller.toggleFireChoice()))
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderMenuBar() string {
	var titles []string
	for i, title := range m.projector.Menus() {
		if i == m.activeMenu {
			titles = append(titles, activeMenuTitleStyle.Render(title))
		} else {
			titles = append(titles, menuTitleStyle.Render(title))
		}
	}
	return menuBarStyle.Width(max(m.width, 1)).Render(lipgloss.JoinHorizontal(lipgloss.Top, titles...))
}

func (m ConsoleUI) renderDropdown() string {
	var content strings.Builder
	submenu := ""
	for i, cmd := range m.items() {
		if cmd.Submenu != submenu {
			submenu = cmd.Submenu
			if submenu != "" {
				content.WriteString(submenuStyle.Render("▸ "+titleCaser.String(submenu)) + "\n")
			} else if i > 0 {
				content.WriteString(promptStyle.Render(strings.Repeat("─", 24)) + "\n")
			}
		} else if cmd.Separator && i > 0 {
			content.WriteString(promptStyle.Render(strings.Repeat("─", 24)) + "\n")
		}

		label := fmt.Sprintf("%-22s %3s", cmd.Label, cmd.Shortcut)
		if cmd.Submenu != "" {
			label = "  " + label
		}
		switch {
		case i == m.cursor:
			content.WriteString(selectedItemStyle.Render(label))
		case cmd.Enabled:
			content.WriteString(itemStyle.Render(label))
		default:
			content.WriteString(disabledItemStyle.Render(label))
		}
		content.WriteString("\n")
	}
	return dropdownStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func (m ConsoleUI) renderFacts() string {
	f := m.projector.Facts()
	game := "none"
	if g, ok := f.Game.(events.Identified); ok {
		game = g.ID().String()
	} else if f.Game != nil {
		game = "running"
	}
	unit := "none"
	if f.Entity != nil {
		unit = fmt.Sprintf("#%d", f.Entity.ID())
	}

	return fmt.Sprintf("%s %s   %s %s   %s %s   %s %t   %s %t   %s %t   %s %t",
		titleStyle.Render("Phase"), titleCaser.String(strings.ReplaceAll(f.Phase.String(), "_", " ")),
		titleStyle.Render("Game"), game,
		titleStyle.Render("Unit"), unit,
		titleStyle.Render("Board"), f.HasBoard,
		titleStyle.Render("Units"), f.HasUnitList,
		titleStyle.Render("Target"), f.HasTarget,
		titleStyle.Render("Fire"), f.HasFireChoice,
	)
}

func (m ConsoleUI) renderHelp() string {
	help := "←/→ menus • ↓/enter open • enter select • ctrl+y copy id • esc close/quit"
	if m.controller != nil {
		help += " • tab next phase • e unit • t target • c fire choice"
	}
	return promptStyle.Render(help)
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Leave the tactics console?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(40).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	sections := []string{m.renderMenuBar()}
	if m.open {
		sections = append(sections, m.renderDropdown())
	}
	sections = append(sections,
		"",
		m.renderFacts(),
		promptStyle.Render(strings.Repeat("─", max(m.width-2, 1))),
		m.logViewport.View(),
		m.renderHelp(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
