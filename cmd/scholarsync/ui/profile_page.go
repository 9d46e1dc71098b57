package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/chart"
	"scholarsync/internal/graph"
	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// Badges shown on every profile.
var profileBadges = []string{"★ Top Contributor", "◆ Mentor"}

// graphFrameMsg carries one layout frame of render run.
// ok is false once the run's channel is closed.
type graphFrameMsg struct {
	run   int
	frame graph.Frame
	ok    bool
}

// waitFrame blocks until the run publishes its next frame or ends.
func waitFrame(run int, frames <-chan graph.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		return graphFrameMsg{run: run, frame: f, ok: ok}
	}
}

type profileKeys struct {
	Cycle key.Binding
	Up    key.Binding
	Down  key.Binding
}

func (k profileKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Cycle, k.Up, k.Down} }
func (k profileKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// ProfilePage shows one member's profile: header, score history, the
// collaboration network and badges.
//
// The network simulation starts in Init and is stopped by Close. Cycling the
// displayed member restarts it around the new centre.
type ProfilePage struct {
	deps     Deps
	users    []types.User
	index    int
	renderer *graph.Renderer
	viewport viewport.Model
	keys     profileKeys

	frames  <-chan graph.Frame
	frame   graph.Frame
	run     int
	width   int
}

// NewProfilePage creates the profile screen showing the current user.
func NewProfilePage(deps Deps) *ProfilePage {
	users := deps.Store.ListUsers()
	index := 0
	for i, u := range users {
		if u.ID == deps.CurrentUserID {
			index = i
			break
		}
	}
	return &ProfilePage{
		deps:     deps,
		users:    users,
		index:    index,
		renderer: graph.NewRenderer(deps.Graph),
		viewport: viewport.New(0, 0),
		keys: profileKeys{
			Cycle: key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n/tab", "next profile")),
			Up:    key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑", "scroll up")),
			Down:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓", "scroll down")),
		},
	}
}

// Displayed returns the member whose profile is shown.
func (p *ProfilePage) Displayed() (types.User, bool) {
	if len(p.users) == 0 {
		return types.User{}, false
	}
	return p.users[p.index], true
}

// Init starts the network simulation.
func (p *ProfilePage) Init() tea.Cmd { return p.startGraph() }

func (p *ProfilePage) startGraph() tea.Cmd {
	center, ok := p.Displayed()
	if !ok {
		return nil
	}
	_, p.frames = p.renderer.Render(p.deps.ctx(), center, others(p.users, center.ID))
	p.frame = graph.Frame{}
	p.run++
	p.refresh()
	return waitFrame(p.run, p.frames)
}

func (p *ProfilePage) SetSize(w, h int) {
	p.width = w
	p.viewport.Width = w
	p.viewport.Height = h
	p.refresh()
}

func (p *ProfilePage) Keys() help.KeyMap { return p.keys }

// Close stops the network simulation.
func (p *ProfilePage) Close() {
	p.renderer.Stop()
}

func (p *ProfilePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case graphFrameMsg:
		if msg.run != p.run || !msg.ok {
			return nil
		}
		p.frame = msg.frame
		p.refresh()
		if msg.frame.Settled {
			logging.GraphDebug("profile: layout settled at tick %d", msg.frame.Tick)
			return nil
		}
		return waitFrame(p.run, p.frames)

	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Cycle) && len(p.users) > 0 {
			p.index = (p.index + 1) % len(p.users)
			p.viewport.GotoTop()
			return p.startGraph()
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *ProfilePage) View() string { return p.viewport.View() }

func (p *ProfilePage) refresh() {
	user, ok := p.Displayed()
	if !ok {
		p.viewport.SetContent(p.deps.Styles.Muted.Render("No profiles."))
		return
	}
	s := p.deps.Styles
	width := max(p.width, MinimumTerminalWidth)

	// Header: identity on the left, reputation on the right.
	reputation := s.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.Bold.Render(fmt.Sprintf("%d", user.CollaboratorScore)),
		s.Muted.Render("REPUTATION"),
	))
	identityW := max(width-lipgloss.Width(reputation)-2, 20)

	identity := []string{
		s.Avatar.Render(user.Initials()) + " " + s.Title.UnsetMarginBottom().Render(user.Name),
		s.Muted.Render(user.Headline()),
		s.Body.Width(identityW).Render(user.Bio),
	}
	if links := renderSocialLinks(s, user.SocialLinks); links != "" {
		identity = append(identity, links)
	}
	identity = append(identity, s.Tags(user.Interests, ""))
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(identityW).Render(strings.Join(identity, "\n")),
		"  ",
		reputation,
	)

	// Panels: chart and network side by side when there is room.
	panelW := width
	sideBySide := width >= 2*MinimumTerminalWidth
	if sideBySide {
		panelW = (width - CardGap) / 2
	}
	inner := CardContentWidth(panelW)

	history := chart.ScoreHistory()
	chartBody, err := chart.Render(history, max(inner-6, 5), ChartPlotHeight)
	if err != nil {
		chartBody = s.Muted.Render(err.Error())
	}
	if sum, err := chart.Summarize(history); err == nil {
		chartBody += "\n" + s.Muted.Render(fmt.Sprintf("avg %.0f · peak %.0f · latest %.0f", sum.Mean, sum.Max, sum.Latest))
	}
	chartPanel := s.Card.Width(panelW - CardBorderWidth).Render(
		s.Muted.Render("SCORE HISTORY") + "\n" + chartBody)

	network := graph.Raster(p.renderer.Diagram(), p.frame, inner, GraphRows)
	if len(p.frame.Positions) == 0 {
		network = lipgloss.Place(inner, GraphRows, lipgloss.Center, lipgloss.Center, s.Muted.Render("Laying out…"))
	}
	netPanel := s.Card.Width(panelW - CardBorderWidth).Render(
		s.Muted.Render("COLLABORATION NETWORK") + "\n" + network)

	var panels string
	if sideBySide {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, chartPanel, strings.Repeat(" ", CardGap), netPanel)
	} else {
		panels = lipgloss.JoinVertical(lipgloss.Left, chartPanel, netPanel)
	}

	badges := make([]string, len(profileBadges))
	for i, b := range profileBadges {
		badges[i] = s.Card.Render(b)
	}

	content := strings.Join([]string{
		header,
		"",
		panels,
		"",
		s.Bold.Render("Badges & Achievements"),
		lipgloss.JoinHorizontal(lipgloss.Top, badges...),
	}, "\n")
	p.viewport.SetContent(content)
}
