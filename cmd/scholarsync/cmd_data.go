package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scholarsync/cmd/scholarsync/ui"
	"scholarsync/internal/graph"
	"scholarsync/internal/logging"
	"scholarsync/internal/store"
)

// Terminal raster size for `graph` without --out.
const (
	rasterCols = 64
	rasterRows = 20
)

var (
	graphCenter string
	graphOut    string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Lay out a member's collaboration network",
	Long: `Runs the force-directed layout to completion and prints it as a terminal
raster, or writes an SVG document with --out.`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

var listCmd = &cobra.Command{
	Use:       "list users|posts|opportunities",
	Short:     "List the member directory, feed posts or marketplace listings",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"users", "posts", "opportunities"},
	RunE:      runList,
}

// cliStyles returns styles for the configured theme.
func cliStyles() ui.Styles {
	return ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
}

func runGraph(cmd *cobra.Command, args []string) error {
	s := store.NewMemoryStore()
	id := graphCenter
	if id == "" {
		id = cfg.UI.CurrentUserID
	}
	center, ok := s.User(id)
	if !ok {
		return fmt.Errorf("unknown user %q", id)
	}

	d := graph.Build(center, s.Connections(center.ID))
	frame := graph.Settle(d, graph.DefaultOptions())
	logging.CLI("graph settled: center=%s nodes=%d ticks=%d", center.ID, len(d.Nodes), frame.Tick)

	out := cmd.OutOrStdout()
	if graphOut == "" {
		fmt.Fprintln(out, graph.Raster(d, frame, rasterCols, rasterRows))
		for _, n := range d.Nodes {
			fmt.Fprintf(out, "%-3s %s\n", n.Initials, n.Name)
		}
		return nil
	}

	f, err := os.Create(graphOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", graphOut, err)
	}
	if err := graph.WriteSVG(f, d, frame); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", graphOut, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", graphOut, err)
	}
	fmt.Fprintf(out, "Wrote %s (%d nodes)\n", graphOut, len(d.Nodes))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one of users, posts, opportunities")
	}
	s := store.NewMemoryStore()

	var table *ui.SimpleTable
	switch args[0] {
	case "users":
		table = ui.NewSimpleTable("Members", "ID", "Name", "Role", "Institution", "Score", "Interests")
		for _, u := range s.ListUsers() {
			table.AddRow(u.ID, u.Name, string(u.Role), u.Institution,
				strconv.Itoa(u.CollaboratorScore), strings.Join(u.Interests, ", "))
		}
	case "posts":
		table = ui.NewSimpleTable("Research Feed", "ID", "Author", "Title", "Likes", "Tags")
		for _, p := range s.ListPosts() {
			table.AddRow(p.ID, p.AuthorName, p.Title, strconv.Itoa(p.Likes), "#"+strings.Join(p.Tags, " #"))
		}
	case "opportunities":
		table = ui.NewSimpleTable("Research Marketplace", "ID", "Type", "Title", "Institution", "Deadline", "Amount")
		for _, o := range s.ListOpportunities() {
			table.AddRow(o.ID, string(o.Type), o.Title, o.Institution, o.Deadline, o.Amount)
		}
	default:
		return fmt.Errorf("unknown collection %q (valid: users, posts, opportunities)", args[0])
	}

	table.MaxWidth = 48
	fmt.Fprintln(cmd.OutOrStdout(), table.View(cliStyles()))
	return nil
}
