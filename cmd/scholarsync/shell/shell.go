// Package shell is the ScholarSync root Bubble Tea model: it owns the active
// view, mounts and tears down screens, and renders the navigation chrome.
//
// Every command a screen returns is tagged with the navigation epoch it was
// issued under. When the shell navigates away the epoch is bumped, so a late
// completion for a torn-down screen is dropped instead of reaching the new one.
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scholarsync/cmd/scholarsync/ui"
	"scholarsync/internal/interaction"
	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// Factory constructs a fresh screen for a view.
type Factory func(ui.Deps) ui.Screen

// DefaultFactories maps every view to its screen constructor.
func DefaultFactories() map[types.View]Factory {
	return map[types.View]Factory{
		types.ViewDashboard:   func(d ui.Deps) ui.Screen { return ui.NewDashboardPage(d) },
		types.ViewMatch:       func(d ui.Deps) ui.Screen { return ui.NewMatchPage(d) },
		types.ViewFeed:        func(d ui.Deps) ui.Screen { return ui.NewFeedPage(d) },
		types.ViewMarketplace: func(d ui.Deps) ui.Screen { return ui.NewMarketplacePage(d) },
		types.ViewAssistant:   func(d ui.Deps) ui.Screen { return ui.NewAssistantPage(d) },
		types.ViewProfile:     func(d ui.Deps) ui.Screen { return ui.NewProfilePage(d) },
	}
}

// screenMsg is a screen completion tagged with the epoch it was issued under.
type screenMsg struct {
	epoch uint64
	msg   tea.Msg
}

var _ tea.Model = (*Model)(nil)

// Model is the root model.
type Model struct {
	deps      ui.Deps
	factories map[types.View]Factory
	cancel    context.CancelFunc

	view   types.View
	screen ui.Screen
	epoch  interaction.Epoch

	layout     ui.LayoutConfig
	menuOpen   bool
	menuCursor int
	help       help.Model
	keys       keyMap
	closed     bool
}

// New returns the shell showing initial. The shell derives its own context
// from parent; it is cancelled on quit.
func New(parent context.Context, deps ui.Deps, initial types.View) *Model {
	return NewWithFactories(parent, deps, initial, DefaultFactories())
}

// NewWithFactories is New with a custom view-to-screen table.
func NewWithFactories(parent context.Context, deps ui.Deps, initial types.View, factories map[types.View]Factory) *Model {
	ctx, cancel := context.WithCancel(parent)
	deps.Ctx = ctx

	if _, ok := factories[initial]; !ok {
		initial = types.ViewDashboard
	}

	m := &Model{
		deps:      deps,
		factories: factories,
		cancel:    cancel,
		view:      initial,
		layout:    ui.NewLayoutConfig(ui.CompactModeWidth, 30),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.screen = m.factories[initial](deps)
	m.resize()
	logging.UI("shell ready: view=%s", initial)
	return m
}

// Active returns the current view.
func (m *Model) Active() types.View { return m.view }

// Screen returns the mounted screen.
func (m *Model) Screen() ui.Screen { return m.screen }

// Epoch returns the current navigation epoch.
func (m *Model) Epoch() uint64 { return m.epoch.Current() }

// MenuOpen reports whether the overlay menu is shown.
func (m *Model) MenuOpen() bool { return m.menuOpen }

func (m *Model) Init() tea.Cmd {
	return m.wrap(m.screen.Init())
}

// SetView navigates to v. Navigating to the active view is a no-op.
// Otherwise the current screen is closed, the epoch bumped, and a fresh
// screen mounted; no screen state survives navigation.
func (m *Model) SetView(v types.View) tea.Cmd {
	m.menuOpen = false
	if v == m.view {
		return nil
	}
	factory, ok := m.factories[v]
	if !ok {
		logging.UI("navigate: no screen for %s", v)
		return nil
	}

	m.screen.Close()
	epoch := m.epoch.Bump()
	logging.UI("navigate: %s -> %s (epoch %d)", m.view, v, epoch)

	m.view = v
	m.screen = factory(m.deps)
	m.resize()
	return m.wrap(m.screen.Init())
}

// Shutdown cancels the shell context and closes the active screen. It is
// safe to call more than once.
func (m *Model) Shutdown() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	m.screen.Close()
	m.epoch.Bump()
	logging.UI("shell shutdown: view=%s", m.view)
}

// wrap tags cmd's result with the current epoch.
func (m *Model) wrap(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tagged(m.epoch.Current(), cmd)
}

func tagged(epoch uint64, cmd tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				if c != nil {
					out = append(out, tagged(epoch, c))
				}
			}
			return out
		default:
			return screenMsg{epoch: epoch, msg: msg}
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case screenMsg:
		if !m.epoch.Valid(msg.epoch) {
			logging.UIDebug("dropping stale %T from epoch %d (current %d)", msg.msg, msg.epoch, m.epoch.Current())
			return m, nil
		}
		return m, m.wrap(m.screen.Update(msg.msg))
	}

	return m, m.wrap(m.screen.Update(msg))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.Shutdown()
		return tea.Quit
	}

	views := types.Views()

	if m.menuOpen {
		switch {
		case key.Matches(msg, m.keys.MenuUp):
			m.menuCursor = (m.menuCursor + len(views) - 1) % len(views)
		case key.Matches(msg, m.keys.MenuDown):
			m.menuCursor = (m.menuCursor + 1) % len(views)
		case key.Matches(msg, m.keys.MenuSelect):
			return m.SetView(views[m.menuCursor])
		case key.Matches(msg, m.keys.MenuClose), key.Matches(msg, m.keys.Menu):
			m.menuOpen = false
		}
		return nil
	}

	if key.Matches(msg, m.keys.Menu) {
		m.menuOpen = true
		for i, v := range views {
			if v == m.view {
				m.menuCursor = i
			}
		}
		return nil
	}

	for i, b := range m.keys.Jump {
		if key.Matches(msg, b) && i < len(views) {
			return m.SetView(views[i])
		}
	}

	return m.wrap(m.screen.Update(msg))
}

func (m *Model) resize() {
	m.help.Width = m.layout.TerminalWidth
	m.screen.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
}

// =============================================================================
// RENDERING
// =============================================================================

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	s := m.deps.Styles
	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()

	body := m.screen.View()
	if m.menuOpen && m.layout.IsCompact {
		body = m.renderMenu()
	}
	content := lipgloss.NewStyle().MaxWidth(w).MaxHeight(h).Render(body)
	footer := s.Footer.Render(m.help.ShortHelpView(m.footerKeys()))

	if m.layout.IsCompact {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeaderBar(), content, footer)
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(h), content)
	return lipgloss.JoinVertical(lipgloss.Left, main, footer)
}

func (m *Model) footerKeys() []key.Binding {
	out := append([]key.Binding{}, m.screen.Keys().ShortHelp()...)
	return append(out, m.keys.Menu, m.keys.Quit)
}

func (m *Model) renderSidebar(height int) string {
	s := m.deps.Styles
	var sb strings.Builder
	sb.WriteString(s.Bold.Render("ScholarSync"))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(`"Connecting Minds"`))
	sb.WriteString("\n\n")
	for i, v := range types.Views() {
		sb.WriteString(m.navItem(i, v, m.menuOpen && i == m.menuCursor))
		sb.WriteString("\n")
	}
	return s.Sidebar.Height(max(height-2, 1)).Render(sb.String())
}

func (m *Model) navItem(i int, v types.View, cursor bool) string {
	s := m.deps.Styles
	label := fmt.Sprintf("%s %s", s.NavKey.Render(fmt.Sprintf("F%d", i+1)), v.Label())
	switch {
	case cursor:
		return s.NavActive.Render("› " + label)
	case v == m.view:
		return s.NavActive.Render("  " + label)
	default:
		return s.NavItem.Render("  " + label)
	}
}

func (m *Model) renderHeaderBar() string {
	s := m.deps.Styles
	left := s.Bold.Render("ScholarSync") + s.Muted.Render(" · "+m.view.Label())
	right := s.Muted.Render("ctrl+o menu")
	gap := max(m.layout.TerminalWidth-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return s.Header.Width(max(m.layout.TerminalWidth, 1)).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderMenu() string {
	s := m.deps.Styles
	var sb strings.Builder
	for i, v := range types.Views() {
		sb.WriteString(m.navItem(i, v, i == m.menuCursor))
		sb.WriteString("\n")
	}
	sb.WriteString(s.Muted.Render("↑/↓ move · enter open · esc close"))
	return s.Card.Width(ui.MenuOverlayWidth).Render(sb.String())
}
