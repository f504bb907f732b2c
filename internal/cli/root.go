// Package cli provides the command-line interface for edge.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/config"
	"github.com/edgehq/edge-cli/internal/metrics"
	"github.com/edgehq/edge-cli/internal/session"
	"github.com/edgehq/edge-cli/internal/state"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global wiring, initialized in PersistentPreRunE
	cfg       config.Config
	logger    *slog.Logger
	closeLog  func() error
	store     *session.Store
	api       *client.Client
	bus       *state.Bus
	respCache *state.Cache
	collector *metrics.Collector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edge",
	Short: "AI co-founder workspace",
	Long: `Edge is the terminal client for your AI executive team.

Onboard as CEO, CTO or CMO and the two complementary executives are
created for you. Chat with them, share a task board, keep a company
profile they use for context, and exchange files through a common
workspace.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		store = session.NewStore(cfg.DataDir)
		bus = state.NewBus()
		respCache = state.NewCache(filepath.Join(cfg.DataDir, "cache"))

		collector = metrics.NewCollector()
		api = client.New(cfg.APIURL,
			client.WithToken(accessToken),
			client.WithTimeouts(cfg.RequestTimeout, cfg.AITimeout),
			client.WithLogger(logger),
			client.WithMetrics(collector),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if collector != nil && logger != nil {
			for op, snap := range collector.Snapshot() {
				logger.Debug("api timings", "op", op, "count", snap.Count, "avg_ms", snap.AvgTimeMs, "max_ms", snap.MaxTimeMs)
			}
			logger.Debug("command finished", "uptime_ms", collector.Uptime().Milliseconds())
		}
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// accessToken resolves the bearer token: environment/config first, then
// the saved session. Empty means unauthenticated requests.
func accessToken() string {
	if cfg.AccessToken != "" {
		return cfg.AccessToken
	}
	if sess, err := store.Load(); err == nil && sess.AccessToken != "" {
		return sess.AccessToken
	}
	return ""
}

// requireSession loads the saved session or fails with a pointer to the
// onboarding commands.
func requireSession() (*session.Session, error) {
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(statusCmd)
}
