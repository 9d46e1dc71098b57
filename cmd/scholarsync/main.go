// Command scholarsync is the ScholarSync terminal client.
//
// Run without arguments to start the interactive TUI. The subcommands expose
// the same data and AI features for scripting.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scholarsync/internal/config"
	"scholarsync/internal/logging"
)

var (
	// Global flags
	cfgPath  string
	envFile  string
	apiKey   string
	provider string
	model    string
	verbose  bool
	timeout  time.Duration

	// Effective configuration, resolved in PersistentPreRunE.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scholarsync",
	Short: "ScholarSync - connect with researchers from the terminal",
	Long: `ScholarSync is a research networking client: discover collaborators,
share research snapshots, browse grants and jobs, and ask an AI research
assistant for help.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; only headless commands may log to stderr.
		return setup(!cmd.HasParent())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load environment variables from this file if present")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "AI API key (or set API_KEY / GEMINI_API_KEY / OPENAI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "AI provider: gemini or openai")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name (default depends on provider)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for headless AI commands")

	rootCmd.Flags().StringVar(&startView, "view", "dashboard", "Initial screen: dashboard, match, feed, marketplace, assistant, profile")

	matchCmd.Flags().StringVar(&matchUser, "user", "", "Member to match (default: configured current user)")
	matchCmd.Flags().IntVar(&matchConcurrency, "concurrency", 4, "Maximum concurrent AI requests")

	graphCmd.Flags().StringVar(&graphCenter, "center", "", "Member at the centre (default: configured current user)")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Write SVG to this file instead of printing the terminal raster")

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(polishCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the env file and config, applies flag overrides, and
// initializes logging.
func setup(interactive bool) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if apiKey != "" {
		c.LLM.APIKey = apiKey
	}
	if provider != "" {
		c.LLM.Provider = provider
	}
	if model != "" {
		c.LLM.Model = model
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}

	opts := logging.Options{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		Dir:        c.Logging.Dir,
		Categories: c.Logging.Categories,
	}
	if verbose {
		opts.Level = "debug"
		opts.Stderr = !interactive
	}
	if err := logging.Initialize(opts); err != nil {
		return err
	}

	logging.Boot("config loaded: path=%s provider=%s credential=%v", cfgPath, c.LLM.Provider, c.LLM.HasCredential())
	cfg = c
	return nil
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
