package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/prereq"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List grove worktrees and their sessions",
	Long: `Shows every worktree grove manages, its path, and whether its zellij
session is currently alive.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := buildManager(cmd.Context(), prereq.Git, prereq.Zellij)
	if err != nil {
		return err
	}

	entries, err := manager.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No worktrees. Start one with: grove new")
		return nil
	}

	for _, entry := range entries {
		marker := idleMarker
		if entry.SessionAlive {
			marker = liveMarker
		}
		fmt.Printf("%s %s  %s\n", marker, labelStyle.Render(entry.Label), pathStyle.Render(entry.Path))
	}
	return nil
}
