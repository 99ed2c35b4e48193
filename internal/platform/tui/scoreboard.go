package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const (
	cardWidth  = 22  // one version card
	maxScores  = 100 // history rows loaded per version
	cardsAbove = 9   // rows used by title, cards and gaps above the table
)

var (
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).MarginBottom(1)
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(cardWidth).
			Padding(0, 1)
	cardActiveStyle = cardStyle.BorderForeground(lipgloss.Color("229"))
	cardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	newBestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/tab", "next version"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev version"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// versionCard is the summary of one version's runs.
type versionCard struct {
	info  registry.GameInfo
	stats storage.GameStats
}

// ScoreboardModel shows one card per version with its run totals, the best
// score kept across versions, and the run history of the selected version.
type ScoreboardModel struct {
	store     *storage.Store
	cards     []versionCard
	cursor    int
	best      int // persisted BestScore
	scores    []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	for _, g := range registry.List() {
		card := versionCard{info: g, stats: storage.GameStats{GameID: g.ID}}
		if store != nil {
			if stats, err := store.GetGameStats(g.ID); err == nil {
				card.stats = *stats
			}
		}
		m.cards = append(m.cards, card)
	}
	if store != nil {
		if best, err := store.Integer(sim.BestScoreKey); err == nil {
			m.best = best
		}
	}

	m.table = m.newTable()
	m.loadHistory()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "", Width: 6},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-cardsAbove-4, 3)),
	)

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

// loadHistory fills the table with the selected version's runs.
func (m *ScoreboardModel) loadHistory() {
	m.scores = nil
	if m.store != nil && len(m.cards) > 0 {
		if scores, err := m.store.TopScores(m.cards[m.cursor].info.ID, maxScores); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			m.bestMark(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// bestMark tags the runs that hold the best score kept across versions.
func (m *ScoreboardModel) bestMark(score int) string {
	if score > 0 && score == m.best {
		return "best"
	}
	return ""
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
		case key.Matches(msg, m.keys.Next):
			m.selectCard(m.cursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectCard(m.cursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadHistory()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectCard moves the selection, wrapping around both ends.
func (m *ScoreboardModel) selectCard(i int) {
	if len(m.cards) == 0 {
		return
	}
	m.cursor = (i + len(m.cards)) % len(m.cards)
	m.loadHistory()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(cardTitleStyle.Render("SCORECARD"), m.width))
	b.WriteString("\n")
	best := fmt.Sprintf("Best  %d", m.best)
	if m.best > 0 {
		best = newBestStyle.Render(best)
	}
	b.WriteString(centerText(best, m.width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderCards()))
	b.WriteString("\n\n")

	if len(m.scores) == 0 {
		b.WriteString(centerText(cardDimStyle.Italic(true).Render("No runs yet. Pass a pipe to set a score!"), m.width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.table.View()))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderCards lays the version cards side by side, or one line per version
// when the terminal is too narrow.
func (m ScoreboardModel) renderCards() string {
	if len(m.cards)*(cardWidth+4) > m.width {
		lines := make([]string, len(m.cards))
		for i, c := range m.cards {
			line := fmt.Sprintf("  %-18s best %3d  runs %3d", c.info.Title, c.stats.HighScore, c.stats.GamesCount)
			if i == m.cursor {
				line = menuSelectedStyle.Render("> " + line[2:])
			}
			lines[i] = line
		}
		return strings.Join(lines, "\n")
	}

	cards := make([]string, len(m.cards))
	for i, c := range m.cards {
		body := fmt.Sprintf("%s\nbest %d\nruns %d", c.info.Title, c.stats.HighScore, c.stats.GamesCount)
		if c.stats.GamesCount > 0 {
			body += fmt.Sprintf("\navg  %.1f", c.stats.AvgScore)
		} else {
			body += "\n" + cardDimStyle.Render("not played")
		}
		style := cardStyle
		if i == m.cursor {
			style = cardActiveStyle
		}
		cards[i] = style.Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
