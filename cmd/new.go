package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/prereq"
)

var newCmd = &cobra.Command{
	Use:   "new [label]",
	Short: "Create a worktree and run a session inside it",
	Long: `Creates a git worktree on a new branch named after the label (generated
when omitted), runs the configured setup, writes the environment file, and
hands the terminal to a zellij session until you exit. Re-running with an
existing label reuses the worktree, refreshes the environment file, and
reattaches.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	label := ""
	if len(args) == 1 {
		label = args[0]
	}

	manager, err := buildManager(cmd.Context(), prereq.Git, prereq.Zellij)
	if err != nil {
		return err
	}
	return manager.Create(cmd.Context(), label)
}
