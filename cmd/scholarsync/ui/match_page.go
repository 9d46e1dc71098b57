package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/interaction"
	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// ResponseRate is the fixed response rate shown on every profile card.
const ResponseRate = "98%"

// matchAdviceMsg carries the rationale for the request tagged seq.
type matchAdviceMsg struct {
	seq  uint64
	text string
}

type matchKeys struct {
	Pass    key.Binding
	Connect key.Binding
	Advice  key.Binding
}

func (k matchKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Pass, k.Connect, k.Advice} }
func (k matchKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// MatchPage is the matchmaking screen: one profile card at a time, with
// pass/connect and on-demand AI match advice.
type MatchPage struct {
	deps    Deps
	me      types.User
	deck    *interaction.Deck
	seq     interaction.Sequencer
	spinner spinner.Model
	keys    matchKeys

	advice string
	notice string
	width  int
	height int
}

// NewMatchPage creates the matchmaking screen over every known user.
func NewMatchPage(deps Deps) *MatchPage {
	return &MatchPage{
		deps: deps,
		me:   deps.CurrentUser(),
		deck: interaction.NewDeck(deps.Store.ListUsers()),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(deps.Styles.Spinner),
		),
		keys: matchKeys{
			Pass:    key.NewBinding(key.WithKeys("left", "x", "h"), key.WithHelp("←/x", "pass")),
			Connect: key.NewBinding(key.WithKeys("right", "enter", "l"), key.WithHelp("→/enter", "connect")),
			Advice:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI match")),
		},
	}
}

func (p *MatchPage) Init() tea.Cmd { return nil }

func (p *MatchPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *MatchPage) Keys() help.KeyMap { return p.keys }

func (p *MatchPage) Close() {}

// Loading reports whether the newest advice request is unresolved.
func (p *MatchPage) Loading() bool { return p.seq.Pending() }

func (p *MatchPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Pass), key.Matches(msg, p.keys.Connect):
			p.advance()
			return nil
		case key.Matches(msg, p.keys.Advice):
			return p.requestAdvice()
		}

	case matchAdviceMsg:
		if !p.seq.Accept(msg.seq) {
			logging.UIDebug("match: dropping superseded advice seq=%d", msg.seq)
			return nil
		}
		p.advice = msg.text

	case spinner.TickMsg:
		if !p.seq.Pending() {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}
	return nil
}

// advance moves to the next profile. Any advice and every in-flight
// request belong to the old profile and are discarded.
func (p *MatchPage) advance() {
	wrapped := p.deck.Next()
	p.advice = ""
	p.seq.Invalidate()
	p.notice = ""
	if wrapped {
		p.notice = interaction.ExhaustedNotice
	}
	logging.UIDebug("match: index=%d wrapped=%v", p.deck.Index(), wrapped)
}

func (p *MatchPage) requestAdvice() tea.Cmd {
	profile, ok := p.deck.Current()
	if !ok {
		return nil
	}
	wasPending := p.seq.Pending()
	seq := p.seq.Issue()
	p.notice = ""

	ctx, gw, me := p.deps.ctx(), p.deps.Gateway, p.me
	fetch := func() tea.Msg {
		return matchAdviceMsg{seq: seq, text: gw.MatchRationale(ctx, me, profile)}
	}
	if wasPending {
		return fetch
	}
	return tea.Batch(fetch, p.spinner.Tick)
}

func (p *MatchPage) View() string {
	s := p.deps.Styles

	profile, ok := p.deck.Current()
	if !ok {
		return s.Muted.Render("All caught up!")
	}

	cardW := min(max(p.width, MinimumTerminalWidth), 72)
	inner := CardContentWidth(cardW)

	action := s.Muted.Render("[a] ✦ AI Match")
	if p.seq.Pending() {
		action = p.spinner.View() + " " + s.Muted.Render("Analyzing…")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Bold.Width(inner-lipgloss.Width(action)).Render("Discover"),
		action,
	)

	var body strings.Builder
	body.WriteString(s.Avatar.Render(profile.Initials()) + " " + s.Bold.Render(profile.Name))
	body.WriteString("\n")
	body.WriteString(s.Muted.Render(fmt.Sprintf("%s @ %s", profile.Role, profile.Institution)))
	body.WriteString("\n\n")

	if p.advice != "" {
		advice := s.Bold.Render("✦ AI Analysis:") + "\n" + s.Body.Render(p.advice)
		body.WriteString(s.Card.Width(inner - CardBorderWidth).Render(advice))
		body.WriteString("\n")
	}

	upper := make([]string, len(profile.Interests))
	for i, t := range profile.Interests {
		upper[i] = strings.ToUpper(t)
	}
	body.WriteString(s.Tags(upper, ""))
	body.WriteString("\n")
	if links := renderSocialLinks(s, profile.SocialLinks); links != "" {
		body.WriteString("\n" + links + "\n")
	}

	body.WriteString("\n" + s.Muted.Render("BIO") + "\n")
	body.WriteString(s.Body.Width(inner).Render(profile.Bio))
	body.WriteString("\n")
	body.WriteString(s.RenderDivider(inner))
	body.WriteString("\n")

	half := inner / 2
	score := lipgloss.JoinVertical(lipgloss.Center,
		s.Bold.Render(fmt.Sprintf("%d", profile.CollaboratorScore)), s.Muted.Render("COLLAB SCORE"))
	rate := lipgloss.JoinVertical(lipgloss.Center,
		s.Bold.Render(ResponseRate), s.Muted.Render("RESPONSE RATE"))
	body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(half, lipgloss.Center, score),
		lipgloss.PlaceHorizontal(inner-half, lipgloss.Center, rate),
	))

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n")
	if p.notice != "" {
		out.WriteString(s.Notice.Render(p.notice))
		out.WriteString("\n")
	}
	out.WriteString(s.Card.Width(cardW - CardBorderWidth).Render(body.String()))
	out.WriteString("\n")
	out.WriteString(s.Muted.Render(fmt.Sprintf("  ✕ pass    ♥ connect    %d/%d", p.deck.Index()+1, p.deck.Len())))
	return out.String()
}
