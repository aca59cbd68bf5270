// Package main provides the CLI entrypoint for mathdice.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/mathdice/internal/config"
	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/scores"
	"github.com/verte-zerg/mathdice/internal/server"
	"github.com/verte-zerg/mathdice/internal/stats"
	"github.com/verte-zerg/mathdice/internal/statsui"
	"github.com/verte-zerg/mathdice/internal/store"
	"github.com/verte-zerg/mathdice/internal/tui"
)

const (
	defaultServeAddr = ":8080"
	defaultTopLimit  = 10
)

var (
	playUser       string
	playDifficulty string
	playServer     string

	serveAddr string
	serveDB   string

	statsUser       string
	statsServer     string
	statsDifficulty string
	statsPlain      bool

	topDifficulty string
	topLimit      int
	topServer     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mathdice",
		Short:         "Arithmetic dice quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playUser, "user", "", "player name (default: system user)")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", "", "start directly on easy|medium|hard")
	rootCmd.Flags().StringVar(&playServer, "server", "", "score service URL (default: local database)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &playUser, fileCfg.Player.User)
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Player.Difficulty)
	applyStringConfig(cmd, "server", &playServer, fileCfg.Player.Server)

	username := resolveUser(playUser)
	if playDifficulty != "" {
		if _, err := game.GetProfile(playDifficulty); err != nil {
			return err
		}
		playDifficulty = strings.ToLower(strings.TrimSpace(playDifficulty))
	}

	client, cleanup, err := resolveClient(playServer)
	if err != nil {
		return err
	}
	defer cleanup()

	model := tui.NewModel(username, playDifficulty, client, game.NewGenerator())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the score service",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: "+defaultServeAddr+")")
	cmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyStringConfig(cmd, "db", &serveDB, fileCfg.Serve.DB)

	envCfg, err := server.ConfigFromEnv()
	if err != nil {
		return err
	}
	if serveAddr == "" {
		serveAddr = envCfg.Addr
	}
	if serveDB == "" {
		serveDB = envCfg.DBPath
	}
	if serveDB == "" {
		serveDB = config.DefaultDBPath()
	}

	st, err := store.Open(serveDB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(st).ListenAndServe(ctx, serveAddr)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse game history and leaderboards",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "player name (default: system user)")
	cmd.Flags().StringVar(&statsServer, "server", "", "score service URL (default: local database)")
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "easy", "initial leaderboard difficulty")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &statsUser, fileCfg.Player.User)
	applyStringConfig(cmd, "server", &statsServer, fileCfg.Player.Server)

	username := resolveUser(statsUser)
	client, cleanup, err := resolveClient(statsServer)
	if err != nil {
		return err
	}
	defer cleanup()

	if statsPlain {
		return runPlainStats(client, username)
	}

	model := statsui.NewModel(client, username, statsDifficulty)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(client scores.Client, username string) error {
	ctx := context.Background()
	entries, err := client.FetchHistory(ctx, username, 200)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderSummary(os.Stdout, username, entries); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(os.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return stats.RenderHistory(os.Stdout, entries)
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard for a difficulty",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
	cmd.Flags().StringVar(&topDifficulty, "difficulty", "easy", "difficulty (easy|medium|hard)")
	cmd.Flags().IntVar(&topLimit, "limit", defaultTopLimit, "number of players to show")
	cmd.Flags().StringVar(&topServer, "server", "", "score service URL (default: local database)")
	return cmd
}

func runTopCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &topServer, fileCfg.Player.Server)

	difficulty := strings.ToLower(strings.TrimSpace(topDifficulty))
	if !game.ValidKey(difficulty) {
		return fmt.Errorf("%w: %q", game.ErrUnknownDifficulty, topDifficulty)
	}
	if topLimit <= 0 {
		return fmt.Errorf("--limit must be greater than 0")
	}

	client, cleanup, err := resolveClient(topServer)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := client.FetchLeaderboard(context.Background(), difficulty, topLimit)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return stats.RenderLeaderboard(os.Stdout, difficulty, entries)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveClient picks the HTTP client when a server URL is configured,
// otherwise the local SQLite store.
func resolveClient(serverURL string) (scores.Client, func(), error) {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL != "" {
		return scores.NewHTTPClient(strings.TrimRight(serverURL, "/")), func() {}, nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return scores.NewStoreClient(st), cleanup, nil
}

func resolveUser(name string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# mathdice configuration
# Uncomment a value to enable it. CLI flags override config values.

[player]
# user = "alice"                  # Player name (default: system user)
# difficulty = "easy"             # Skip the selection screen
# server = "http://localhost:8080" # Score service URL (default: local database)

[serve]
# addr = ":8080"                  # Listen address
# db = ""                         # SQLite database path
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
