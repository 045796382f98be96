package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/prereq"
)

var skipConfirm bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [label]",
	Short: "Remove a worktree, its branch, and its session",
	Long: `Tears down a worktree: offers to apply unmerged commits back to the
default branch first, force-removes the working tree (uncommitted changes
are discarded), deletes the branch, and deletes the zellij session.

With no label, every grove worktree is cleaned after a single confirmation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	manager, err := buildManager(cmd.Context(), prereq.Git)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return manager.CleanupAll(cmd.Context(), skipConfirm)
	}
	return manager.Cleanup(cmd.Context(), args[0], skipConfirm)
}
