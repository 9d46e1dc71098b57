package shell

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"scholarsync/cmd/scholarsync/ui"
	"scholarsync/internal/graph"
	"scholarsync/internal/logging"
	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

// =============================================================================
// FAKES
// =============================================================================

type pingMsg struct{ n int }

type fakeScreen struct {
	view     types.View
	inits    int
	closed   int
	received []tea.Msg
	next     tea.Cmd // returned from the next Update
	w, h     int
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return func() tea.Msg { return pingMsg{n: 0} }
}

func (s *fakeScreen) Update(msg tea.Msg) tea.Cmd {
	s.received = append(s.received, msg)
	cmd := s.next
	s.next = nil
	return cmd
}

func (s *fakeScreen) View() string      { return "screen:" + s.view.String() }
func (s *fakeScreen) SetSize(w, h int)  { s.w, s.h = w, h }
func (s *fakeScreen) Keys() help.KeyMap { return noKeys{} }
func (s *fakeScreen) Close()            { s.closed++ }

func (s *fakeScreen) got(msg tea.Msg) bool {
	for _, m := range s.received {
		if reflect.DeepEqual(m, msg) {
			return true
		}
	}
	return false
}

type noKeys struct{}

func (noKeys) ShortHelp() []key.Binding  { return nil }
func (noKeys) FullHelp() [][]key.Binding { return nil }

type fakeTable struct {
	mounted []*fakeScreen
}

func (f *fakeTable) factories() map[types.View]Factory {
	out := make(map[types.View]Factory)
	for _, v := range types.Views() {
		v := v
		out[v] = func(ui.Deps) ui.Screen {
			s := &fakeScreen{view: v}
			f.mounted = append(f.mounted, s)
			return s
		}
	}
	return out
}

func newFakeShell(t *testing.T, initial types.View) (*Model, *fakeTable) {
	t.Helper()
	table := &fakeTable{}
	deps := ui.Deps{Store: store.NewMemoryStore(), Styles: ui.NewStyles(ui.LightTheme())}
	m := NewWithFactories(context.Background(), deps, initial, table.factories())
	t.Cleanup(m.Shutdown)
	return m, table
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestSetView_SameViewIsNoop(t *testing.T) {
	m, table := newFakeShell(t, types.ViewMatch)
	before := m.Screen()

	assert.Nil(t, m.SetView(types.ViewMatch))
	assert.Same(t, before, m.Screen())
	assert.Equal(t, uint64(0), m.Epoch())
	assert.Equal(t, 0, table.mounted[0].closed)
	assert.Len(t, table.mounted, 1)
}

func TestSetView_ClosesAndRemounts(t *testing.T) {
	m, table := newFakeShell(t, types.ViewDashboard)

	cmd := m.SetView(types.ViewFeed)
	require.NotNil(t, cmd, "new screen's Init must be returned")

	require.Len(t, table.mounted, 2)
	assert.Equal(t, 1, table.mounted[0].closed)
	assert.Equal(t, 1, table.mounted[1].inits)
	assert.Equal(t, types.ViewFeed, m.Active())
	assert.Equal(t, uint64(1), m.Epoch())

	// Returning to a view builds a fresh screen.
	m.SetView(types.ViewDashboard)
	require.Len(t, table.mounted, 3)
	assert.NotSame(t, table.mounted[0], m.Screen())
}

func TestJumpKeys(t *testing.T) {
	m, _ := newFakeShell(t, types.ViewDashboard)

	send(m, tea.KeyMsg{Type: tea.KeyF3})
	assert.Equal(t, types.ViewFeed, m.Active())

	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'6'}, Alt: true})
	assert.Equal(t, types.ViewProfile, m.Active())

	send(m, tea.KeyMsg{Type: tea.KeyF5})
	assert.Equal(t, types.ViewAssistant, m.Active())
}

func TestMenuNavigation(t *testing.T) {
	m, table := newFakeShell(t, types.ViewDashboard)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, m.MenuOpen())

	// Keys are captured by the menu, not the screen.
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, table.mounted[0].received)

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.MenuOpen())
	assert.Equal(t, types.ViewFeed, m.Active())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	send(m, tea.KeyMsg{Type: tea.KeyUp})
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.MenuOpen())
	assert.Equal(t, types.ViewFeed, m.Active(), "esc closes without navigating")
}

func TestOtherKeysReachScreen(t *testing.T) {
	m, table := newFakeShell(t, types.ViewDashboard)
	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	send(m, k)
	assert.True(t, table.mounted[0].got(k))
}

// =============================================================================
// EPOCH GUARD
// =============================================================================

func TestStaleCompletionIsDropped(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	restore := logging.ReplaceCore(obs)
	defer restore()

	m, table := newFakeShell(t, types.ViewMatch)
	match := table.mounted[0]

	match.next = func() tea.Msg { return pingMsg{n: 42} }
	pending := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, pending)

	send(m, tea.KeyMsg{Type: tea.KeyF1})
	dash := table.mounted[1]

	late := pending()
	send(m, late)

	assert.False(t, dash.got(pingMsg{n: 42}), "late completion leaked into the new screen")
	assert.False(t, match.got(pingMsg{n: 42}), "late completion reached a closed screen")
	assert.Equal(t, 1, logs.FilterMessageSnippet("dropping stale").Len())
}

func TestCurrentCompletionIsDelivered(t *testing.T) {
	m, table := newFakeShell(t, types.ViewMatch)
	screen := table.mounted[0]

	msg := m.Init()()
	send(m, msg)
	assert.True(t, screen.got(pingMsg{n: 0}))
}

func TestBatchIsRetagged(t *testing.T) {
	m, table := newFakeShell(t, types.ViewFeed)
	screen := table.mounted[0]

	screen.next = tea.Batch(
		func() tea.Msg { return pingMsg{n: 1} },
		func() tea.Msg { return pingMsg{n: 2} },
	)
	cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "a batch must stay a batch so the runtime fans it out")
	require.Len(t, batch, 2)

	for _, c := range batch {
		inner, ok := c().(screenMsg)
		require.True(t, ok)
		assert.Equal(t, m.Epoch(), inner.epoch)
		send(m, inner)
	}
	assert.True(t, screen.got(pingMsg{n: 1}))
	assert.True(t, screen.got(pingMsg{n: 2}))
}

// =============================================================================
// LAYOUT AND QUIT
// =============================================================================

func TestLayoutModes(t *testing.T) {
	m, table := newFakeShell(t, types.ViewMarketplace)

	send(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	wide := m.View()
	assert.Contains(t, wide, "Connecting Minds")
	assert.Contains(t, wide, "Assistant")
	assert.Equal(t, 120-ui.SidebarWidth-1, table.mounted[0].w)

	send(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	narrow := m.View()
	assert.NotContains(t, narrow, "Connecting Minds")
	assert.Contains(t, narrow, "ctrl+o menu")
	assert.Equal(t, 80, table.mounted[0].w)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	overlay := m.View()
	assert.NotContains(t, overlay, "screen:marketplace")
	for _, v := range types.Views() {
		assert.Contains(t, overlay, v.Label())
	}
}

func TestQuitClosesScreenAndCancels(t *testing.T) {
	m, table := newFakeShell(t, types.ViewDashboard)
	ctx := m.deps.Ctx

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, table.mounted[0].closed)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	m.Shutdown()
	assert.Equal(t, 1, table.mounted[0].closed, "shutdown must be idempotent")
	assert.Empty(t, m.View())
}

// =============================================================================
// REAL SCREENS
// =============================================================================

func TestNavigateAllScreens(t *testing.T) {
	defer goleak.VerifyNone(t)

	opts := graph.DefaultOptions()
	opts.Tick = time.Millisecond
	deps := ui.Deps{
		Store:         store.NewMemoryStore(),
		Styles:        ui.NewStyles(ui.LightTheme()),
		CurrentUserID: store.DefaultCurrentUserID,
		Graph:         opts,
	}
	m := New(context.Background(), deps, types.ViewProfile)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Init()

	for _, v := range types.Views() {
		m.SetView(v)
		require.Equal(t, v, m.Active())
		view := m.View()
		require.NotEmpty(t, strings.TrimSpace(view), "empty render for %s", v)
	}

	// Leaving the profile stopped its simulation; the last screen is closed on quit.
	m.Shutdown()
}
