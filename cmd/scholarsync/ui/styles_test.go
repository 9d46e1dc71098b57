package ui

import (
	"testing"

	"scholarsync/internal/config"
	"scholarsync/internal/types"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("SCHOLARSYNC_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when SCHOLARSYNC_DARK_MODE=1")
	}

	t.Setenv("SCHOLARSYNC_DARK_MODE", "false")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when SCHOLARSYNC_DARK_MODE=false")
	}

	t.Setenv("SCHOLARSYNC_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme by default")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black terminal background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for a white terminal background")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("SCHOLARSYNC_DARK_MODE", "1")

	if ThemeFor(config.ThemeLight).IsDark {
		t.Fatalf("explicit light theme must ignore the environment")
	}
	if !ThemeFor(config.ThemeDark).IsDark {
		t.Fatalf("expected dark theme")
	}
	if !ThemeFor(config.ThemeAuto).IsDark {
		t.Fatalf("auto should defer to DetectTheme")
	}
}

func TestBadgeColor(t *testing.T) {
	cases := map[types.OpportunityType]string{
		types.OpportunityGrant:         string(GrantBadge),
		types.OpportunityJob:           string(JobBadge),
		types.OpportunityCollaboration: string(CollaborationBadge),
	}
	for typ, want := range cases {
		if got := string(BadgeColor(typ)); got != want {
			t.Errorf("BadgeColor(%s) = %s, want %s", typ, got, want)
		}
	}
	if GrantBadge == JobBadge || JobBadge == CollaborationBadge {
		t.Fatalf("badge colors must be distinct")
	}
}

func TestLayoutConfig(t *testing.T) {
	wide := NewLayoutConfig(120, 40)
	if wide.IsCompact {
		t.Fatalf("120 columns should show the sidebar")
	}
	if wide.ContentWidth() != 120-SidebarWidth-1 {
		t.Fatalf("unexpected content width %d", wide.ContentWidth())
	}

	narrow := NewLayoutConfig(CompactModeWidth-1, 40)
	if !narrow.IsCompact {
		t.Fatalf("%d columns should be compact", CompactModeWidth-1)
	}
	if narrow.ContentHeight() != 40-FooterHeight-HeaderBarHeight {
		t.Fatalf("unexpected content height %d", narrow.ContentHeight())
	}
}
