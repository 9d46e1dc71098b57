package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Users", "ID", "Name")
	table.AddRow("1", "Dr. Elena Foster")
	table.AddRow("2")

	view := table.View(NewStyles(LightTheme()))
	t.Logf("View:\n%s", view)

	if !strings.Contains(view, "Users") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Dr. Elena Foster") {
		t.Error("View missing cell content")
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Len())
	}
	// title, header, divider, two rows
	if lines := strings.Count(view, "\n"); lines != 5 {
		t.Errorf("expected 5 lines, got %d", lines)
	}
}

func TestSimpleTableTruncates(t *testing.T) {
	table := NewSimpleTable("", "Rationale")
	table.MaxWidth = 10
	table.AddRow("a rather long explanation\nover two lines")

	view := table.View(NewStyles(LightTheme()))
	if !strings.Contains(view, "a rather …") {
		t.Fatalf("expected truncated cell, got:\n%s", view)
	}
	if strings.Contains(view, "over two lines") {
		t.Fatalf("cell should be truncated")
	}
}
