package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nibolas/internal/registry"
	"github.com/vovakirdan/nibolas/internal/storage"
)

const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Switch}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "levels/runs")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows one row per level and, below it, the runs of the
// selected level measured against that level's best.
type ScoreboardModel struct {
	store  *storage.Store
	levels []registry.GameInfo
	stats  map[string]*storage.LevelStats
	best   map[string]int
	runs   []storage.ScoreEntry
	now    func() time.Time

	levelTable table.Model
	runTable   table.Model
	runsFocus  bool
	selected   int

	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered level.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	return newScoreboard(store, registry.List(), width, height)
}

func newScoreboard(store *storage.Store, levels []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		levels: levels,
		stats:  make(map[string]*storage.LevelStats),
		best:   make(map[string]int),
		now:    time.Now,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.loadStats()
	m.layout()
	return m
}

// loadStats reads the per-level summary. Read errors show as unplayed levels.
func (m *ScoreboardModel) loadStats() {
	if m.store == nil {
		return
	}
	if all, err := m.store.GetAllLevelStats(); err == nil {
		m.stats = all
	}
	for _, l := range m.levels {
		if best, err := m.store.HighScore(l.ID); err == nil {
			m.best[l.ID] = best
		}
	}
}

func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	if m.store == nil || len(m.levels) == 0 {
		return
	}
	if runs, err := m.store.TopScores(m.levels[m.selected].ID, maxRuns); err == nil {
		m.runs = runs
	}
}

// layout rebuilds both tables for the current size and selection.
func (m *ScoreboardModel) layout() {
	levelRows := min(len(m.levels), max(m.height/3, 3))
	runRows := max(m.height-levelRows-10, 3)

	m.levelTable = newBoardTable([]table.Column{
		{Title: "Level", Width: 20},
		{Title: "Best", Width: 8},
		{Title: "Runs", Width: 6},
		{Title: "Avg", Width: 8},
		{Title: "Last flown", Width: 12},
	}, levelRows+1)
	m.levelTable.SetRows(m.levelRows())
	m.levelTable.SetCursor(m.selected)

	m.runTable = newBoardTable([]table.Column{
		{Title: "#", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Of best", Width: 9},
		{Title: "Flown", Width: 12},
	}, runRows+1)
	m.loadRuns()
	m.runTable.SetRows(m.runRows())

	m.focus(m.runsFocus)
}

func newBoardTable(columns []table.Column, height int) table.Model {
	t := table.New(table.WithColumns(columns), table.WithHeight(height))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) focus(runs bool) {
	m.runsFocus = runs
	if runs {
		m.levelTable.Blur()
		m.runTable.Focus()
		return
	}
	m.runTable.Blur()
	m.levelTable.Focus()
}

func (m ScoreboardModel) levelRows() []table.Row {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		st, played := m.stats[l.ID]
		if !played || st.RunsCount == 0 {
			rows[i] = table.Row{l.Title, bestCell(m.best[l.ID]), "0", "-", "never"}
			continue
		}
		rows[i] = table.Row{
			l.Title,
			bestCell(m.best[l.ID]),
			fmt.Sprintf("%d", st.RunsCount),
			fmt.Sprintf("%.1f", st.AvgScore),
			ago(m.now(), st.LastPlayed),
		}
	}
	return rows
}

func bestCell(best int) string {
	if best <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", best)
}

func (m ScoreboardModel) runRows() []table.Row {
	best := 0
	if len(m.levels) > 0 {
		best = m.best[m.levels[m.selected].ID]
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			ofBest(r.Score, best),
			ago(m.now(), r.CreatedAt),
		}
	}
	return rows
}

// ofBest shows a run as a share of the best score. A run can beat the stored
// best when the best was cleared after it was recorded.
func ofBest(score, best int) string {
	switch {
	case best <= 0:
		return "-"
	case score >= best:
		return "best"
	default:
		return fmt.Sprintf("%d%%", score*100/best)
	}
}

// ago renders the time since t in the largest whole unit.
func ago(now, t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.focus(!m.runsFocus)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	if m.runsFocus {
		m.runTable, cmd = m.runTable.Update(msg)
		return m, cmd
	}

	m.levelTable, cmd = m.levelTable.Update(msg)
	if c := m.levelTable.Cursor(); c != m.selected && c >= 0 && c < len(m.levels) {
		m.selected = c
		m.loadRuns()
		m.runTable.SetRows(m.runRows())
		m.runTable.GotoTop()
	}
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	active := boxStyle.BorderForeground(lipgloss.Color("57"))

	levels, runs := boxStyle, active
	if !m.runsFocus {
		levels, runs = active, boxStyle
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.center("FLIGHT LOG")))
	b.WriteString("\n\n")
	b.WriteString(m.center(levels.Render(m.levelTable.View())))
	b.WriteString("\n")

	if len(m.levels) > 0 {
		b.WriteString(m.center("Runs - "+m.levels[m.selected].Title))
		b.WriteString("\n")
	}
	body := m.runTable.View()
	if len(m.runs) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No runs recorded yet.")
	}
	b.WriteString(m.center(runs.Render(body)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
