package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/interaction"
	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

type assistantReplyMsg struct{ text string }

type assistantKeys struct {
	Send   key.Binding
	Scroll key.Binding
}

func (k assistantKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Send, k.Scroll} }
func (k assistantKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// AssistantPage is the research assistant chat.
//
// Requests are neither cancelled nor queued: a second question may be sent
// while one is outstanding, and replies are appended in completion order.
type AssistantPage struct {
	deps       Deps
	transcript *interaction.Transcript
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	keys       assistantKeys

	md       *glamour.TermRenderer
	rendered map[string]string // message ID -> rendered model text
	width    int
}

// NewAssistantPage creates the assistant screen with the greeting in place.
func NewAssistantPage(deps Deps) *AssistantPage {
	ti := textinput.New()
	ti.Placeholder = "Ask about grants, research summaries..."
	ti.Prompt = "› "
	ti.CharLimit = 1000
	ti.Focus()

	return &AssistantPage{
		deps:       deps,
		transcript: interaction.NewTranscript(),
		input:      ti,
		viewport:   viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(deps.Styles.Muted)),
		rendered:   make(map[string]string),
		keys: assistantKeys{
			Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		},
	}
}

func (p *AssistantPage) Init() tea.Cmd { return textinput.Blink }

func (p *AssistantPage) SetSize(w, h int) {
	if w != p.width {
		p.md = NewMarkdownRenderer(p.deps.Styles.Theme, w*4/5)
		clear(p.rendered)
	}
	p.width = w
	p.input.Width = max(w-6, 10)
	p.viewport.Width = w
	// input card (3) + thinking line (1)
	p.viewport.Height = max(h-4, 3)
	p.refresh()
}

func (p *AssistantPage) Keys() help.KeyMap { return p.keys }

func (p *AssistantPage) Close() {}

// Transcript exposes the conversation state.
func (p *AssistantPage) Transcript() *interaction.Transcript { return p.transcript }

func (p *AssistantPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Send):
			return p.send()
		case key.Matches(msg, p.keys.Scroll):
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd

	case assistantReplyMsg:
		p.transcript.Receive(msg.text)
		logging.UIDebug("assistant: reply appended, outstanding=%d", p.transcript.Outstanding())
		p.refresh()
		return nil

	case spinner.TickMsg:
		if !p.transcript.Awaiting() {
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

func (p *AssistantPage) send() tea.Cmd {
	wasAwaiting := p.transcript.Awaiting()
	sent, ok := p.transcript.Send(p.input.Value())
	if !ok {
		return nil
	}
	p.input.Reset()
	p.refresh()

	ctx, gw, query := p.deps.ctx(), p.deps.Gateway, sent.Text
	fetch := func() tea.Msg {
		return assistantReplyMsg{text: gw.AssistantReply(ctx, query)}
	}
	if wasAwaiting {
		return fetch
	}
	return tea.Batch(fetch, p.spinner.Tick)
}

// refresh re-renders the transcript and follows the newest message.
func (p *AssistantPage) refresh() {
	s := p.deps.Styles
	width := max(p.width, MinimumTerminalWidth)
	bubbleW := width * 4 / 5

	var sb strings.Builder
	for _, m := range p.transcript.Messages() {
		switch m.Role {
		case types.ChatRoleUser:
			style := s.UserBubble
			if lipgloss.Width(m.Text)+2 > bubbleW {
				style = style.Width(bubbleW)
			}
			sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(m.Text)))
		default:
			text, ok := p.rendered[m.ID]
			if !ok {
				text = safeRenderMarkdown(p.md, m.Text)
				p.rendered[m.ID] = text
			}
			sb.WriteString(s.ModelBubble.Render("✦ " + strings.TrimLeft(text, " ")))
		}
		sb.WriteString("\n\n")
	}
	p.viewport.SetContent(sb.String())
	p.viewport.GotoBottom()
}

func (p *AssistantPage) View() string {
	s := p.deps.Styles
	thinking := ""
	if p.transcript.Awaiting() {
		thinking = s.Muted.Render("✦ ") + p.spinner.View()
	}
	box := s.Card.Width(max(p.width, MinimumTerminalWidth) - CardBorderWidth).Render(p.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, p.viewport.View(), thinking, box)
}
