package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scholarsync/cmd/scholarsync/ui"
	"scholarsync/internal/gateway"
	"scholarsync/internal/logging"
	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

var (
	matchUser        string
	matchConcurrency int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the research assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var polishCmd = &cobra.Command{
	Use:   "polish <draft>",
	Short: "Rewrite a research pitch to be more engaging",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPolish,
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Explain why a member should collaborate with everyone else",
	Long: `Computes an AI collaboration rationale between one member and every other
member, running the requests concurrently, and prints them in directory order.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

// headlessGateway builds a gateway bounded by the --timeout flag.
func headlessGateway(cmd *cobra.Command) (context.Context, context.CancelFunc, *gateway.Gateway, error) {
	ctx := commandContext(cmd)
	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	gw, err := gateway.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("gateway: %w", err)
	}
	logging.CLIDebug("gateway ready: provider=%s", gw.Provider())
	return ctx, cancel, gw, nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("empty question")
	}
	ctx, cancel, gw, err := headlessGateway(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	fmt.Fprintln(cmd.OutOrStdout(), gw.AssistantReply(ctx, query))
	return nil
}

func runPolish(cmd *cobra.Command, args []string) error {
	draft := strings.TrimSpace(strings.Join(args, " "))
	if draft == "" {
		return fmt.Errorf("empty draft")
	}
	ctx, cancel, gw, err := headlessGateway(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	fmt.Fprintln(cmd.OutOrStdout(), gw.PolishPitch(ctx, draft))
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", matchConcurrency)
	}

	s := store.NewMemoryStore()
	id := matchUser
	if id == "" {
		id = cfg.UI.CurrentUserID
	}
	me, ok := s.User(id)
	if !ok {
		return fmt.Errorf("unknown user %q", id)
	}

	ctx, cancel, gw, err := headlessGateway(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	peers := s.Connections(me.ID)
	rationales, err := matchAll(ctx, gw, me, peers, matchConcurrency)
	if err != nil {
		return err
	}

	table := ui.NewSimpleTable(fmt.Sprintf("Matches for %s", me.Name), "ID", "Name", "Score", "Rationale")
	for i, peer := range peers {
		table.AddRow(peer.ID, peer.Name, fmt.Sprintf("%d", peer.CollaboratorScore), rationales[i])
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.View(cliStyles()))
	return nil
}

// matchAll fans out one rationale request per peer, at most limit at a time.
// Results are indexed like peers regardless of completion order.
func matchAll(ctx context.Context, gw ui.Gateway, me types.User, peers []types.User, limit int) ([]string, error) {
	out := make([]string, len(peers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, peer := range peers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = gw.MatchRationale(gctx, me, peer)
			logging.CLIDebug("match %s -> %s done", me.ID, peer.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return out, nil
}
