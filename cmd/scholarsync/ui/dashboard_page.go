package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatCard is one headline figure on the dashboard.
type StatCard struct {
	Value string
	Label string
	Delta string
}

// DashboardStats are the fixed headline figures.
func DashboardStats() []StatCard {
	return []StatCard{
		{Value: "1,240", Label: "Active Scholars", Delta: "+12%"},
		{Value: "85", Label: "Open Grants", Delta: "+5 New"},
		{Value: "Top 5%", Label: "Collaborator Score"},
	}
}

type scrollKeys struct {
	Up   key.Binding
	Down key.Binding
}

func newScrollKeys() scrollKeys {
	return scrollKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/pgup", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/pgdn", "scroll down")),
	}
}

func (k scrollKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Up, k.Down} }
func (k scrollKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// DashboardPage is the home screen: welcome header, stat cards and the
// global research feed.
type DashboardPage struct {
	deps     Deps
	viewport viewport.Model
	keys     scrollKeys
	width    int
}

// NewDashboardPage creates the dashboard screen.
func NewDashboardPage(deps Deps) *DashboardPage {
	return &DashboardPage{
		deps:     deps,
		viewport: viewport.New(0, 0),
		keys:     newScrollKeys(),
	}
}

func (p *DashboardPage) Init() tea.Cmd { return nil }

// SetSize updates the viewport and re-renders the content for the new width.
func (p *DashboardPage) SetSize(w, h int) {
	p.width = w
	p.viewport.Width = w
	p.viewport.Height = h
	p.viewport.SetContent(p.render())
}

func (p *DashboardPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *DashboardPage) View() string { return p.viewport.View() }

func (p *DashboardPage) Keys() help.KeyMap { return p.keys }

func (p *DashboardPage) Close() {}

func (p *DashboardPage) render() string {
	s := p.deps.Styles
	width := max(p.width, MinimumTerminalWidth)

	var sb strings.Builder
	sb.WriteString(s.Title.Render(fmt.Sprintf("Welcome back, %s.", firstName(p.deps.CurrentUser().Name))))
	sb.WriteString("\n")
	sb.WriteString(s.Subtitle.Render("Democratizing research, one connection at a time."))
	sb.WriteString("\n\n")

	cardW := StatCardWidth(width)
	stats := DashboardStats()
	cards := make([]string, 0, len(stats)*2)
	for i, st := range stats {
		body := s.Bold.Render(st.Value)
		if st.Delta != "" {
			body += "  " + s.Success.Render(st.Delta)
		}
		body += "\n" + s.Muted.Render(st.Label)
		cards = append(cards, s.Card.Width(cardW-CardBorderWidth).Render(body))
		if i < len(stats)-1 {
			cards = append(cards, strings.Repeat(" ", CardGap))
		}
	}
	if cardW < 18 {
		sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	} else {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	sb.WriteString("\n\n")

	sb.WriteString(s.Bold.Render("◎ Global Research Feed"))
	sb.WriteString("\n\n")
	for _, post := range p.deps.Store.ListPosts() {
		var card strings.Builder
		card.WriteString(s.Bold.Render(post.AuthorName) + " " + s.Muted.Render("shared a research snapshot"))
		card.WriteString("\n")
		card.WriteString(s.Body.Render(post.Title))
		card.WriteString("\n")
		card.WriteString(s.Muted.Render(post.Description))
		if len(post.Tags) > 0 {
			card.WriteString("\n")
			card.WriteString(s.Tags(post.Tags, "#"))
		}
		sb.WriteString(s.Card.Width(width - CardBorderWidth).Render(card.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}
