package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/prereq"
)

var openCmd = &cobra.Command{
	Use:   "open <label>",
	Short: "Reattach to an existing worktree's session",
	Long: `Attaches to the worktree's zellij session, spawning it first if needed.
The worktree must already exist; open never re-runs setup and never
rewrites the environment file.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	manager, err := buildManager(cmd.Context(), prereq.Git, prereq.Zellij)
	if err != nil {
		return err
	}
	return manager.Open(cmd.Context(), args[0])
}
