package ui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scholarsync/internal/graph"
	"scholarsync/internal/interaction"
	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

type fakeGateway struct {
	calls atomic.Int32
}

func (g *fakeGateway) MatchRationale(_ context.Context, a, b types.User) string {
	g.calls.Add(1)
	return "match " + a.ID + "->" + b.ID
}

func (g *fakeGateway) PolishPitch(_ context.Context, draft string) string {
	g.calls.Add(1)
	return "POLISHED: " + draft
}

func (g *fakeGateway) AssistantReply(_ context.Context, query string) string {
	g.calls.Add(1)
	return "**reply** to " + query
}

func newTestDeps() (Deps, *fakeGateway) {
	gw := &fakeGateway{}
	opts := graph.DefaultOptions()
	opts.Tick = time.Millisecond
	opts.Updates = 30
	return Deps{
		Ctx:           context.Background(),
		Store:         store.NewMemoryStore(),
		Gateway:       gw,
		Styles:        NewStyles(LightTheme()),
		CurrentUserID: store.DefaultCurrentUserID,
		Graph:         opts,
	}, gw
}

// collect runs cmd and any batched children, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardPageView(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewDashboardPage(deps)
	page.SetSize(100, 200)

	view := page.View()
	for _, want := range []string{
		"Welcome back, James.",
		"1,240", "Active Scholars", "+12%",
		"85", "Open Grants", "+5 New",
		"Top 5%", "Collaborator Score",
		"Global Research Feed",
		"AI in Radiology: Quick Update",
		"#Healthcare",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("dashboard view missing %q", want)
		}
	}
}

func TestMatchPageDeckWrap(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewMatchPage(deps)
	page.SetSize(80, 40)

	if !strings.Contains(page.View(), "Dr. Elena Foster") {
		t.Fatalf("expected first profile on mount")
	}

	for i := 0; i < 3; i++ {
		page.Update(tea.KeyMsg{Type: tea.KeyRight})
		if strings.Contains(page.View(), interaction.ExhaustedNotice) {
			t.Fatalf("notice shown before wrap at step %d", i)
		}
	}
	if page.deck.Index() != 3 {
		t.Fatalf("expected index 3, got %d", page.deck.Index())
	}

	page.Update(keyRunes("x"))
	view := page.View()
	if page.deck.Index() != 0 {
		t.Fatalf("expected wrap to 0, got %d", page.deck.Index())
	}
	if !strings.Contains(view, interaction.ExhaustedNotice) {
		t.Fatalf("expected exhausted notice after wrap")
	}
	if !strings.Contains(view, "98%") || !strings.Contains(view, "920") {
		t.Fatalf("expected response rate and collaborator score on card")
	}
}

func TestMatchPageAdvice(t *testing.T) {
	deps, gw := newTestDeps()
	page := NewMatchPage(deps)
	page.SetSize(80, 40)

	cmd := page.Update(keyRunes("a"))
	if cmd == nil || !page.Loading() {
		t.Fatalf("expected pending advice request")
	}

	var advice *matchAdviceMsg
	for _, m := range collect(cmd) {
		if am, ok := m.(matchAdviceMsg); ok {
			advice = &am
		}
	}
	if advice == nil || gw.calls.Load() != 1 {
		t.Fatalf("expected exactly one gateway call with an advice message")
	}

	page.Update(*advice)
	if page.Loading() {
		t.Fatalf("loading should clear once the newest request resolves")
	}
	if !strings.Contains(page.View(), "match 2->1") {
		t.Fatalf("expected advice to render, got:\n%s", page.View())
	}

	page.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if page.advice != "" {
		t.Fatalf("profile change must clear advice")
	}
}

func TestMatchPageNewestRequestWins(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewMatchPage(deps)

	page.Update(keyRunes("a"))
	page.Update(keyRunes("a"))

	page.Update(matchAdviceMsg{seq: 2, text: "newer"})
	page.Update(matchAdviceMsg{seq: 1, text: "older"})
	if page.advice != "newer" {
		t.Fatalf("expected newest advice to stick, got %q", page.advice)
	}
}

func TestMatchPageAdviceAfterNavigationIsDropped(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewMatchPage(deps)

	page.Update(keyRunes("a"))
	page.Update(tea.KeyMsg{Type: tea.KeyRight})
	page.Update(matchAdviceMsg{seq: 1, text: "about the old profile"})

	if page.advice != "" {
		t.Fatalf("advice for a previous profile must not be shown")
	}
	if page.Loading() {
		t.Fatalf("invalidated request must not keep the spinner alive")
	}
}

func TestFeedPagePolish(t *testing.T) {
	deps, gw := newTestDeps()
	page := NewFeedPage(deps)
	page.SetSize(80, 40)

	if cmd := page.Update(tea.KeyMsg{Type: tea.KeyCtrlG}); cmd != nil {
		t.Fatalf("polish on an empty draft must do nothing")
	}
	if page.Draft().Polishing() || gw.calls.Load() != 0 {
		t.Fatalf("empty draft must not start polishing")
	}

	page.Update(keyRunes("coral study"))
	if page.Draft().Text() != "coral study" {
		t.Fatalf("draft not synced with composer, got %q", page.Draft().Text())
	}

	cmd := page.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if !page.Draft().Polishing() {
		t.Fatalf("expected polishing flag")
	}
	if !strings.Contains(page.View(), "Polishing...") {
		t.Fatalf("expected polishing indicator")
	}

	for _, m := range collect(cmd) {
		if _, ok := m.(polishDoneMsg); ok {
			page.Update(m)
		}
	}
	if page.Draft().Polishing() {
		t.Fatalf("polishing flag should clear")
	}
	if got := page.Draft().Text(); got != "POLISHED: coral study" {
		t.Fatalf("draft not replaced, got %q", got)
	}
	if page.input.Value() != page.Draft().Text() {
		t.Fatalf("composer not updated with polished text")
	}
}

func TestFeedPagePostIsDecorative(t *testing.T) {
	deps, gw := newTestDeps()
	page := NewFeedPage(deps)
	page.SetSize(80, 60)

	page.Update(keyRunes("draft"))
	page.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	view := page.View()
	if !strings.Contains(view, PostNotice) {
		t.Fatalf("expected post notice")
	}
	if page.Draft().Text() != "draft" || gw.calls.Load() != 0 {
		t.Fatalf("post must change nothing")
	}
	if !strings.Contains(view, "Video Placeholder") {
		t.Fatalf("expected post list under composer")
	}
}

func TestAssistantPageSend(t *testing.T) {
	deps, gw := newTestDeps()
	page := NewAssistantPage(deps)
	page.SetSize(80, 40)

	// glamour styles word by word, so match a single word of the greeting.
	if !strings.Contains(page.View(), "Hello!") {
		t.Fatalf("expected greeting")
	}

	page.Update(keyRunes("   "))
	if cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("whitespace input must not send")
	}
	if page.Transcript().Len() != 1 || gw.calls.Load() != 0 {
		t.Fatalf("whitespace input must not append or call the gateway")
	}

	page.input.SetValue("")
	page.Update(keyRunes("find grants"))
	first := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if page.input.Value() != "" {
		t.Fatalf("input should be cleared after send")
	}
	page.Update(keyRunes("and mentors"))
	second := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if page.Transcript().Outstanding() != 2 {
		t.Fatalf("expected two outstanding requests, got %d", page.Transcript().Outstanding())
	}

	// Replies land in completion order.
	for _, cmd := range []tea.Cmd{second, first} {
		for _, m := range collect(cmd) {
			if _, ok := m.(assistantReplyMsg); ok {
				page.Update(m)
			}
		}
	}

	msgs := page.Transcript().Messages()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	if msgs[3].Text != "**reply** to and mentors" || msgs[4].Text != "**reply** to find grants" {
		t.Fatalf("replies not appended in completion order: %q, %q", msgs[3].Text, msgs[4].Text)
	}
	if page.Transcript().Awaiting() {
		t.Fatalf("no request should be outstanding")
	}
	if strings.Contains(page.View(), "**reply**") {
		t.Fatalf("model replies should be rendered as markdown")
	}
}

func TestMarketplacePageView(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewMarketplacePage(deps)
	page.SetSize(100, 200)

	view := page.View()
	for _, want := range []string{
		"Research Marketplace",
		"GRANT", "JOB", "COLLABORATION",
		"Due: 2024-10-15",
		"$34,000 / yr",
		"Elsevier",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("marketplace view missing %q", want)
		}
	}
}

func TestProfilePageGraphLifecycle(t *testing.T) {
	deps, _ := newTestDeps()
	page := NewProfilePage(deps)
	page.SetSize(100, 200)
	defer page.Close()

	cmd := page.Init()
	if cmd == nil {
		t.Fatalf("expected simulation to start on mount")
	}
	if len(page.renderer.Diagram().Nodes) != 4 {
		t.Fatalf("expected centre plus three connections, got %d nodes", len(page.renderer.Diagram().Nodes))
	}

	msg, ok := cmd().(graphFrameMsg)
	if !ok || !msg.ok {
		t.Fatalf("expected a frame from the running simulation")
	}
	page.Update(msg)
	if len(page.frame.Positions) != 4 {
		t.Fatalf("frame not applied")
	}

	view := page.View()
	for _, want := range []string{"James Chen", "REPUTATION", "750", "SCORE HISTORY", "avg 672", "latest 750", "COLLABORATION NETWORK", "Top Contributor", "Mentor"} {
		if !strings.Contains(view, want) {
			t.Fatalf("profile view missing %q", want)
		}
	}

	oldRun := page.run
	page.Update(keyRunes("n"))
	if u, _ := page.Displayed(); u.ID != "3" {
		t.Fatalf("expected cycle to the next member, got %s", u.ID)
	}
	if page.renderer.Diagram().Nodes[0].ID != "3" {
		t.Fatalf("graph not restarted around the new centre")
	}

	page.Update(graphFrameMsg{run: oldRun, frame: msg.frame, ok: true})
	if len(page.frame.Positions) != 0 {
		t.Fatalf("frame from the previous run must be ignored")
	}

	page.Close()
	if page.renderer.Running() {
		t.Fatalf("close must stop the simulation")
	}
}
