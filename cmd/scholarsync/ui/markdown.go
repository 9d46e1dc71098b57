package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"scholarsync/internal/logging"
)

// NewMarkdownRenderer returns a glamour renderer matching the theme.
// A nil renderer is valid and renders plain text.
func NewMarkdownRenderer(theme Theme, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if theme.IsDark {
		opts = append(opts, glamour.WithStandardStyle("dark"))
	} else {
		opts = append(opts, glamour.WithStylePath("light"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		logging.UIDebug("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// safeRenderMarkdown renders markdown with panic recovery
func safeRenderMarkdown(r *glamour.TermRenderer, content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.UIDebug("markdown render panic: %v", rec)
			result = content
		}
	}()

	if r != nil && content != "" {
		rendered, err := r.Render(content)
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return content
}
