package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"scholarsync/internal/graph"
	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

// Screen is one mounted view of the shell.
//
// A screen is constructed fresh every time its view is entered and Closed
// when the shell navigates away. Update and View are only ever called from
// the Bubble Tea loop.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Keys() help.KeyMap
	Close()
}

// Gateway is the part of the AI gateway the screens call.
// Implementations never fail; errors come back as in-band text.
type Gateway interface {
	MatchRationale(ctx context.Context, a, b types.User) string
	PolishPitch(ctx context.Context, draft string) string
	AssistantReply(ctx context.Context, query string) string
}

// Deps is what every screen constructor receives.
type Deps struct {
	Ctx           context.Context
	Store         store.Provider
	Gateway       Gateway
	Styles        Styles
	CurrentUserID string
	Graph         graph.Options
}

func (d Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// CurrentUser returns the member the client acts as. An unknown ID falls
// back to the first user.
func (d Deps) CurrentUser() types.User {
	users := d.Store.ListUsers()
	for _, u := range users {
		if u.ID == d.CurrentUserID {
			return u
		}
	}
	if len(users) > 0 {
		return users[0]
	}
	return types.User{}
}

// others returns every user except id, in collection order.
func others(users []types.User, id string) []types.User {
	out := make([]types.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// renderSocialLinks renders "Label: url" pairs, or "" when there are none.
func renderSocialLinks(s Styles, links *types.SocialLinks) string {
	if links == nil {
		return ""
	}
	var parts []string
	for _, l := range links.Links() {
		parts = append(parts, s.Muted.Render(l.Label+":")+" "+s.Link.Render(l.URL))
	}
	return strings.Join(parts, "\n")
}

// firstName drops honorifics and returns the first given name.
func firstName(name string) string {
	for _, p := range strings.Fields(name) {
		if !strings.HasSuffix(p, ".") {
			return p
		}
	}
	return name
}
