package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/interaction"
	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// PostNotice is shown when Post is pressed; posting has no backend.
const PostNotice = "Posting isn't available yet. Your draft was kept."

const composerHeight = 4

type polishDoneMsg struct{ text string }

type feedKeys struct {
	Polish key.Binding
	Post   key.Binding
	Scroll key.Binding
}

func (k feedKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Polish, k.Post, k.Scroll} }
func (k feedKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// FeedPage is the research feed: a snapshot composer with AI polish above
// the list of posts.
type FeedPage struct {
	deps    Deps
	draft   interaction.Draft
	input   textarea.Model
	posts   viewport.Model
	spinner spinner.Model
	keys    feedKeys
	authors map[string]types.User

	notice string
	width  int
}

// NewFeedPage creates the feed screen.
func NewFeedPage(deps Deps) *FeedPage {
	ta := textarea.New()
	ta.Placeholder = "What are you working on today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(composerHeight)
	ta.Focus()

	authors := make(map[string]types.User)
	for _, u := range deps.Store.ListUsers() {
		authors[u.ID] = u
	}

	return &FeedPage{
		deps:    deps,
		input:   ta,
		posts:   viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(deps.Styles.Spinner)),
		authors: authors,
		keys: feedKeys{
			Polish: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "AI polish")),
			Post:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "post")),
			Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll feed")),
		},
	}
}

func (p *FeedPage) Init() tea.Cmd { return textarea.Blink }

func (p *FeedPage) SetSize(w, h int) {
	p.width = w
	p.input.SetWidth(max(w-CardBorderWidth-CardPaddingH*2, 10))
	p.posts.Width = w
	// composer card: title, textarea, actions, borders, notice
	p.posts.Height = max(h-(composerHeight+6), 3)
	p.posts.SetContent(p.renderPosts())
}

func (p *FeedPage) Keys() help.KeyMap { return p.keys }

func (p *FeedPage) Close() {}

// Draft exposes the composer state.
func (p *FeedPage) Draft() *interaction.Draft { return &p.draft }

func (p *FeedPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Polish):
			return p.polish()
		case key.Matches(msg, p.keys.Post):
			p.notice = PostNotice
			logging.UIDebug("feed: post pressed, draft_len=%d", len(p.draft.Text()))
			return nil
		case key.Matches(msg, p.keys.Scroll):
			var cmd tea.Cmd
			p.posts, cmd = p.posts.Update(msg)
			return cmd
		}
		p.notice = ""
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.draft.SetText(p.input.Value())
		return cmd

	case polishDoneMsg:
		p.draft.CompletePolish(msg.text)
		p.input.SetValue(p.draft.Text())
		return nil

	case spinner.TickMsg:
		if !p.draft.Polishing() {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *FeedPage) polish() tea.Cmd {
	wasPolishing := p.draft.Polishing()
	text, ok := p.draft.BeginPolish()
	if !ok {
		return nil
	}
	p.notice = ""
	ctx, gw := p.deps.ctx(), p.deps.Gateway
	fetch := func() tea.Msg {
		return polishDoneMsg{text: gw.PolishPitch(ctx, text)}
	}
	if wasPolishing {
		return fetch
	}
	return tea.Batch(fetch, p.spinner.Tick)
}

func (p *FeedPage) View() string {
	s := p.deps.Styles
	cardW := max(p.width, MinimumTerminalWidth)

	polish := s.Info.Render("✦ AI Polish")
	if p.draft.Polishing() {
		polish = p.spinner.View() + " " + s.Info.Render("Polishing...")
	}
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		polish,
		s.Muted.Render("   ctrl+g polish · ctrl+s "),
		s.Bold.Render("Post"),
	)

	composer := strings.Join([]string{
		s.Muted.Render("SHARE RESEARCH SNAPSHOT"),
		p.input.View(),
		actions,
	}, "\n")

	var out strings.Builder
	out.WriteString(s.Card.Width(cardW - CardBorderWidth).Render(composer))
	out.WriteString("\n")
	if p.notice != "" {
		out.WriteString(s.Notice.Render(p.notice))
	}
	out.WriteString("\n")
	out.WriteString(p.posts.View())
	return out.String()
}

func (p *FeedPage) renderPosts() string {
	s := p.deps.Styles
	cardW := max(p.width, MinimumTerminalWidth)
	inner := CardContentWidth(cardW)

	var sb strings.Builder
	for _, post := range p.deps.Store.ListPosts() {
		var card strings.Builder
		byline := s.Bold.Render(post.AuthorName)
		if author, ok := p.authors[post.AuthorID]; ok {
			byline += "\n" + s.Muted.Render(fmt.Sprintf("%s @ %s", author.Role, author.Institution))
		}
		card.WriteString(byline)
		card.WriteString("\n")
		card.WriteString(videoPlaceholder(s, inner))
		card.WriteString("\n")
		card.WriteString(s.Bold.Render(post.Title))
		card.WriteString("\n")
		card.WriteString(s.Body.Width(inner).Render(post.Description))
		card.WriteString("\n")
		if len(post.Tags) > 0 {
			card.WriteString(s.Tags(post.Tags, "#"))
			card.WriteString("\n")
		}
		card.WriteString(s.Muted.Render(fmt.Sprintf("♥ %d   ✉ Comment", post.Likes)))

		sb.WriteString(s.Card.Width(cardW - CardBorderWidth).Render(card.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}

func videoPlaceholder(s Styles, width int) string {
	box := lipgloss.NewStyle().
		Width(max(width-CardBorderWidth, 10)).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Theme.Border).
		Foreground(s.Theme.Muted)
	return box.Render("▶ Video Placeholder")
}
