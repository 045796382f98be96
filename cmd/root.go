package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/logger"
)

var (
	configDir             string
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "grove",
	Short: "Disposable git worktrees, each with its own zellij session",
	Long: `Grove gives every task an isolated place to happen: a git worktree on a
fresh branch, an environment file with freshly allocated ports, and a
zellij session scoped to that worktree. When the work has landed, grove
folds the whole thing back up.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", `Config directory, relative to the repo root (default ".grove")`)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to warnings only")
}

func initLogging() {
	if quietMode {
		logger.SetLevel(logger.LevelWarn)
	} else if debugMode {
		logger.SetDebug(true)
	}
	// Tag this invocation so interleaved runs can be told apart in the
	// shared log file.
	logger.WithRun(uuid.NewString()[:8]).Debug("grove invoked", "args", strings.Join(os.Args[1:], " "))
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	defer logger.Close()
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("grove %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("grove %s\n", version)
}
