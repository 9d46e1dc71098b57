// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for the shell and screen sizing
const (
	// Navigation
	SidebarWidth     = 22
	HeaderBarHeight  = 2
	FooterHeight     = 1
	MenuOverlayWidth = 28

	// Cards
	CardBorderWidth = 2
	CardPaddingH    = 1
	StatCardCount   = 3
	CardGap         = 1

	// Profile panels
	ChartPlotHeight = 8
	GraphRows       = 12

	// Responsive breakpoints
	MinimumTerminalWidth = 40
	CompactModeWidth     = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
// Terminals narrower than CompactModeWidth use the header bar and overlay menu
// instead of the sidebar.
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the width left for the active screen.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth
	if !l.IsCompact {
		w -= SidebarWidth + 1 // border
	}
	return max(w, MinimumTerminalWidth/2)
}

// ContentHeight returns the height left for the active screen.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - FooterHeight
	if l.IsCompact {
		h -= HeaderBarHeight
	}
	return max(h, 1)
}

// CardContentWidth returns the content width inside a bordered card
func CardContentWidth(cardWidth int) int {
	return max(cardWidth-CardBorderWidth-CardPaddingH*2, 1)
}

// StatCardWidth splits a row into StatCardCount equal cards.
func StatCardWidth(rowWidth int) int {
	return max((rowWidth-CardGap*(StatCardCount-1))/StatCardCount, 10)
}
