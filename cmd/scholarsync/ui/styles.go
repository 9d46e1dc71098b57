// Package ui provides the visual styling and the screens of the ScholarSync terminal client.
// The palette follows the ScholarSync workspace look (warm greys on white) with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scholarsync/internal/config"
	"scholarsync/internal/types"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#FFFFFF")
	LightForeground = lipgloss.Color("#37352F") // Ink
	LightPrimary    = lipgloss.Color("#37352F")
	LightAccent     = lipgloss.Color("#2383E2") // Link blue
	LightSecondary  = lipgloss.Color("#F7F7F5") // Sidebar
	LightMuted      = lipgloss.Color("#9B9A97") // Gray
	LightBorder     = lipgloss.Color("#E9E9E7")
	LightCard       = lipgloss.Color("#FFFFFF")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#191919")
	DarkForeground = lipgloss.Color("#E3E2E0")
	DarkPrimary    = lipgloss.Color("#FFFFFF")
	DarkAccent     = lipgloss.Color("#529CCA")
	DarkSecondary  = lipgloss.Color("#202020")
	DarkMuted      = lipgloss.Color("#9B9A97")
	DarkBorder     = lipgloss.Color("#2F2F2F")
	DarkCard       = lipgloss.Color("#252525")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#E03E3E")
	Success     = lipgloss.Color("#0F7B6C")
	Warning     = lipgloss.Color("#D9730D")
	Info        = lipgloss.Color("#0B6E99")

	// Opportunity badge colors: grant green, job blue, collaboration orange.
	GrantBadge         = lipgloss.Color("#0F7B6C")
	JobBadge           = lipgloss.Color("#0B6E99")
	CollaborationBadge = lipgloss.Color("#D9730D")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" (or anything unknown)
// falls back to DetectTheme.
func ThemeFor(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	if v := os.Getenv("SCHOLARSYNC_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	// COLORFGBG is "foreground;background"; low ANSI indexes are dark backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Sidebar lipgloss.Style

	// Navigation
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavKey    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Link     lipgloss.Style

	// Chat
	UserBubble  lipgloss.Style
	ModelBubble lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Notice  lipgloss.Style

	// Components
	Card    lipgloss.Style
	Tag     lipgloss.Style
	Avatar  lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(0, 2),

		Sidebar: lipgloss.NewStyle().
			Width(SidebarWidth).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(theme.Border),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Border).
			Bold(true).
			Padding(0, 1),

		NavKey: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true),

		UserBubble: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Padding(0, 1),

		ModelBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Border),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Notice: lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true),

		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Secondary).
			Padding(0, 1),

		Avatar: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Muted).
			Bold(true).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected terminal theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// BadgeColor maps an opportunity type to its badge color.
func BadgeColor(t types.OpportunityType) lipgloss.Color {
	switch t {
	case types.OpportunityGrant:
		return GrantBadge
	case types.OpportunityJob:
		return JobBadge
	case types.OpportunityCollaboration:
		return CollaborationBadge
	default:
		return LightMuted
	}
}

// TypeBadge renders the colored badge of an opportunity type.
func (s Styles) TypeBadge(t types.OpportunityType) string {
	return s.Badge.Background(BadgeColor(t)).Render(strings.ToUpper(string(t)))
}

// Tags renders interest or topic chips on one line.
func (s Styles) Tags(tags []string, prefix string) string {
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, s.Tag.Render(prefix+t))
	}
	return strings.Join(chips, " ")
}
