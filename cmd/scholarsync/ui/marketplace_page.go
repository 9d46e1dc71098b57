package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/types"
)

// marketplaceTwoColumnWidth is the narrowest content width that shows two cards per row.
const marketplaceTwoColumnWidth = 80

// MarketplacePage lists grants, jobs and collaboration calls.
type MarketplacePage struct {
	deps     Deps
	viewport viewport.Model
	keys     scrollKeys
	width    int
}

// NewMarketplacePage creates the marketplace screen.
func NewMarketplacePage(deps Deps) *MarketplacePage {
	return &MarketplacePage{
		deps:     deps,
		viewport: viewport.New(0, 0),
		keys:     newScrollKeys(),
	}
}

func (p *MarketplacePage) Init() tea.Cmd { return nil }

func (p *MarketplacePage) SetSize(w, h int) {
	p.width = w
	p.viewport.Width = w
	p.viewport.Height = h
	p.viewport.SetContent(p.render())
}

func (p *MarketplacePage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *MarketplacePage) View() string { return p.viewport.View() }

func (p *MarketplacePage) Keys() help.KeyMap { return p.keys }

func (p *MarketplacePage) Close() {}

func (p *MarketplacePage) render() string {
	s := p.deps.Styles
	width := max(p.width, MinimumTerminalWidth)

	cols := 1
	if width >= marketplaceTwoColumnWidth {
		cols = 2
	}
	cardW := (width - CardGap*(cols-1)) / cols

	var cards []string
	for _, o := range p.deps.Store.ListOpportunities() {
		cards = append(cards, opportunityCard(s, o, cardW))
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Research Marketplace"))
	sb.WriteString("\n")
	for i := 0; i < len(cards); i += cols {
		row := cards[i:min(i+cols, len(cards))]
		if len(row) == 2 {
			row = []string{row[0], strings.Repeat(" ", CardGap), row[1]}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		sb.WriteString("\n")
	}
	return sb.String()
}

func opportunityCard(s Styles, o types.Opportunity, width int) string {
	inner := CardContentWidth(width)
	due := s.Muted.Render("Due: " + o.Deadline)
	badge := s.TypeBadge(o.Type)
	gap := max(inner-lipgloss.Width(badge)-lipgloss.Width(due), 1)

	lines := []string{
		badge + strings.Repeat(" ", gap) + due,
		s.Bold.Width(inner).Render(o.Title),
		s.Muted.Render(o.Institution),
	}
	if o.Amount != "" {
		lines = append(lines, s.Tag.Render(o.Amount))
	}
	return s.Card.Width(width - CardBorderWidth).Render(strings.Join(lines, "\n"))
}
