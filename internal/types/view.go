package types

import (
	"fmt"
	"strings"
)

// View identifies which screen the shell renders.
type View int

const (
	ViewDashboard View = iota
	ViewMatch
	ViewFeed
	ViewMarketplace
	ViewProfile
	ViewAssistant
)

// Views returns every view in navigation order.
func Views() []View {
	return []View{ViewDashboard, ViewMatch, ViewFeed, ViewMarketplace, ViewAssistant, ViewProfile}
}

// String returns the stable identifier of the view.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewMatch:
		return "match"
	case ViewFeed:
		return "feed"
	case ViewMarketplace:
		return "marketplace"
	case ViewProfile:
		return "profile"
	case ViewAssistant:
		return "assistant"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Label returns the navigation label of the view.
func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Home"
	case ViewMatch:
		return "Match"
	case ViewFeed:
		return "Feed"
	case ViewMarketplace:
		return "Market"
	case ViewProfile:
		return "Profile"
	case ViewAssistant:
		return "Assistant"
	default:
		return "Unknown"
	}
}

// ParseView resolves a view from its identifier or its label, case-insensitively.
func ParseView(s string) (View, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Views() {
		if needle == v.String() || needle == strings.ToLower(v.Label()) {
			return v, nil
		}
	}
	return ViewDashboard, fmt.Errorf("unknown view %q", s)
}
