package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/report"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	createdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	updatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Review is what the review screen shows: a dry run of an update and the
// context it was rendered from.
type Review struct {
	Identity string
	Context  string // YAML
	Changes  []render.Change

	// Apply performs the update for real. Nil makes the screen read-only.
	Apply func() ([]render.Change, error)
}

// Detail pane modes
const (
	PaneDiff    = "diff"
	PaneContent = "content"
	PaneContext = "context"
)

// Model represents the main state of the review screen.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model

	review  Review
	visible []int // indices into review.Changes shown in the table
	prefs   Prefs
	pane    string

	ready    bool
	quitting bool
	applying bool
	applied  bool
	showHelp bool

	width, height int
	statusMessage string
	statusTimeout *time.Time
}

type statusMsg string

type appliedMsg struct {
	changes []render.Change
	err     error
}

// statusText returns plain text for a status (ANSI codes break table truncation).
func statusText(s render.Status) string {
	switch s {
	case render.Created:
		return "NEW"
	case render.Updated:
		return "MOD"
	default:
		return "---"
	}
}

func statusStyleFor(s render.Status) lipgloss.Style {
	switch s {
	case render.Created:
		return createdStyle
	case render.Updated:
		return updatedStyle
	default:
		return unchangedStyle
	}
}

// lineDelta counts added and removed lines in a change's diff.
func lineDelta(c render.Change) (added, removed int) {
	for _, line := range strings.Split(c.Diff(), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// NewModel initializes the review screen with the given preferences.
func NewModel(review Review, prefs Prefs) Model {
	columns := []table.Column{
		{Title: "Status", Width: 8},
		{Title: "Path", Width: 50},
		{Title: "Lines", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	pane := PaneContent
	if prefs.DiffView {
		pane = PaneDiff
	}

	m := Model{
		table:         t,
		viewport:      viewport.New(80, 20),
		spinner:       sp,
		review:        review,
		prefs:         prefs,
		pane:          pane,
		statusMessage: "q: quit | ?: help | j/k: navigate | d: diff | c: context | a: apply",
	}
	m.rebuildRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) rebuildRows() {
	m.visible = m.visible[:0]
	var rows []table.Row
	for i, c := range m.review.Changes {
		if m.prefs.HideUnchanged && c.Status == render.Unchanged {
			continue
		}
		added, removed := lineDelta(c)
		m.visible = append(m.visible, i)
		rows = append(rows, table.Row{statusText(c.Status), c.Path, fmt.Sprintf("+%d -%d", added, removed)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.updateViewportContent()
}

// selected returns the change under the cursor.
func (m *Model) selected() (render.Change, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return render.Change{}, false
	}
	return m.review.Changes[m.visible[idx]], true
}

func (m *Model) counts() (created, updated, unchanged int) {
	for _, c := range m.review.Changes {
		switch c.Status {
		case render.Created:
			created++
		case render.Updated:
			updated++
		default:
			unchanged++
		}
	}
	return created, updated, unchanged
}

func (m *Model) updateViewportContent() {
	if m.pane == PaneContext {
		m.viewport.SetContent(report.Highlight(m.review.Context, "context.yaml"))
		m.viewport.GotoTop()
		return
	}
	c, ok := m.selected()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Path))
	b.WriteString(" ")
	b.WriteString(statusStyleFor(c.Status).Render(string(c.Status)))
	b.WriteString("\n\n")
	switch {
	case m.pane == PaneDiff && c.Status != render.Unchanged:
		b.WriteString(report.Highlight(c.Diff(), "change.diff"))
	case m.pane == PaneDiff:
		b.WriteString(unchangedStyle.Render("No changes"))
	default:
		b.WriteString(report.Highlight(c.New, c.Path))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *Model) setStatus(msg string) {
	timeout := time.Now().Add(5 * time.Second)
	m.statusTimeout = &timeout
	m.statusMessage = msg
}

func (m *Model) savePrefs() {
	if err := m.prefs.Save(); err != nil {
		slog.Debug("could not save review preferences", "err", err)
	}
}

func (m *Model) setPane(pane string) {
	if m.pane == pane {
		pane = PaneContent
	}
	m.pane = pane
	if pane != PaneContext {
		m.prefs.DiffView = pane == PaneDiff
		m.savePrefs()
	}
	m.updateViewportContent()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.applying {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "d":
			m.setPane(PaneDiff)
			return m, nil
		case "c":
			m.setPane(PaneContext)
			return m, nil
		case "u":
			m.prefs.HideUnchanged = !m.prefs.HideUnchanged
			m.savePrefs()
			m.rebuildRows()
			if m.prefs.HideUnchanged {
				m.setStatus("Hiding unchanged files")
			} else {
				m.setStatus("Showing all files")
			}
			return m, nil
		case "y":
			return m, copyContext(m.review.Context)
		case "a":
			if m.review.Apply == nil {
				m.setStatus("Read-only review")
				return m, nil
			}
			if m.applied {
				m.setStatus("Already applied")
				return m, nil
			}
			m.applying = true
			return m, tea.Batch(m.spinner.Tick, applyChanges(m.review.Apply))
		case "pgdown", "pgup", "ctrl+d", "ctrl+u":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.table, cmd = m.table.Update(msg)
		m.updateViewportContent()
		return m, cmd

	case appliedMsg:
		m.applying = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Apply failed: %v", msg.err))
			return m, nil
		}
		m.applied = true
		m.review.Changes = msg.changes
		m.rebuildRows()
		created, updated, _ := m.counts()
		m.setStatus(fmt.Sprintf("Applied: %d created, %d updated", created, updated))
		return m, nil

	case statusMsg:
		m.setStatus(string(msg))
		return m, nil

	case spinner.TickMsg:
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			m.statusMessage = "q: quit | ?: help | j/k: navigate | d: diff | c: context | a: apply"
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		usableWidth := m.width - 10
		statusWidth, linesWidth := 8, 12
		pathWidth := max(usableWidth-statusWidth-linesWidth, 25)
		cols := m.table.Columns()
		cols[0].Width = statusWidth
		cols[1].Width = pathWidth
		cols[2].Width = linesWidth
		m.table.SetColumns(cols)

		statsHeaderHeight := 1
		availableHeight := m.height - lipgloss.Height(statusStyle.Render("")) - statsHeaderHeight
		tableHeight := max(int(float64(availableHeight)*0.35), 3)
		viewportHeight := max(availableHeight-tableHeight-detailPaneBorderStyle.GetVerticalFrameSize()-tableBorderStyle.GetVerticalFrameSize(), 3)

		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)
		m.viewport.Width = m.width - detailPaneBorderStyle.GetHorizontalFrameSize()
		m.viewport.Height = viewportHeight
		m.updateViewportContent()
		return m, nil
	}
	return m, nil
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"j/k, ↑/↓", "move between files"},
		{"d", "toggle diff view"},
		{"c", "show the rendered context"},
		{"u", "hide unchanged files"},
		{"y", "copy the context to the clipboard"},
		{"a", "apply the update"},
		{"ctrl+d/ctrl+u", "scroll the preview"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%-16s %s\n", keyStyle.Render(k[0]), k[1])
	}
	return popupStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpView())
	}
	if m.applying {
		box := popupStyle.
			Width(55).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("%s  Applying...\n\nPlease wait", m.spinner.View()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	created, updated, unchanged := m.counts()
	mode := "dry run"
	if m.applied {
		mode = "applied"
	}
	statsContent := fmt.Sprintf("%s  |  %s %-3d  |  %s %-3d  |  %s %-3d  |  %s",
		m.review.Identity,
		createdStyle.Render("Created:"), created,
		updatedStyle.Render("Updated:"), updated,
		unchangedStyle.Render("Unchanged:"), unchanged,
		mode,
	)
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var detailContent string
	if len(m.visible) == 0 && m.pane != PaneContext {
		detailContent = lipgloss.Place(
			m.width,
			m.viewport.Height,
			lipgloss.Center,
			lipgloss.Center,
			emptyTextStyle.Render("Nothing to change.\n\nPress 'u' to show unchanged files\nPress 'c' to see the context"),
		)
	} else {
		detailContent = m.viewport.View()
	}
	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(detailContent)

	statusBar := statusStyle.Width(m.width).Render(m.statusMessage)
	return lipgloss.JoinVertical(lipgloss.Left, statsHeader, tableRender, detailRender, statusBar)
}
