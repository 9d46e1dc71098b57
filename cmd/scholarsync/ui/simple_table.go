package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows for the CLI listings and the match report.
type SimpleTable struct {
	Title    string
	Headers  []string
	Rows     [][]string
	MaxWidth int // per column; 0 means unlimited
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table. Missing cells render empty; extra cells are dropped.
func (t *SimpleTable) AddRow(row ...string) {
	cells := make([]string, len(t.Headers))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of rows.
func (t *SimpleTable) Len() int { return len(t.Rows) }

func (t *SimpleTable) cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if t.MaxWidth <= 0 || lipgloss.Width(s) <= t.MaxWidth {
		return s
	}
	r := []rune(s)
	if len(r) > t.MaxWidth-1 {
		r = r[:t.MaxWidth-1]
	}
	return string(r) + "…"
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Bold.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(t.cell(cell)); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}
	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	writeRow := func(cells []string, style lipgloss.Style) {
		for i, c := range cells {
			sb.WriteString(style.Width(colWidths[i]).Render(t.cell(c)))
			if i < len(cells)-1 {
				sb.WriteString(sepStyle.Render("│"))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers, headerStyle)

	totalWidth := len(colWidths) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("─", totalWidth)) + "\n")

	for _, row := range t.Rows {
		writeRow(row, rowStyle)
	}

	return sb.String()
}
