package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/prereq"
	"github.com/zhubert/grove/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold grove's config directory in the current repository",
	Long: `Creates the config directory with a starter grove.yaml and zellij layout,
makes the worktrees directory, and adds it to .gitignore. Files that
already exist are left untouched, so init is safe to re-run.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := prereq.Validate(prereq.Git); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	repoRoot, err := git.NewService().RepoRoot(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	results, err := scaffold.Init(config.NewPaths(repoRoot, configDir))
	if err != nil {
		return err
	}
	for _, result := range results {
		if result.Created {
			fmt.Printf("Created %s\n", result.Path)
		} else {
			fmt.Printf("Exists  %s\n", result.Path)
		}
	}
	return nil
}
