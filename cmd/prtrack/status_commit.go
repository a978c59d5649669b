package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prtrack/prtrack/pkg/config"
	"github.com/prtrack/prtrack/pkg/github"
	"github.com/spf13/cobra"
)

var statusCommitRepo string

var statusCommitCmd = &cobra.Command{
	Use:   "status_commit <commit_sha> <state> <description> <context> [<target_url>]",
	Short: "Add a commit status",
	Long: `Create a commit status on the given commit. State must be one of error,
failure, pending, or success. The target URL is optional.

The repository comes from --repo or from the repo key in
.prtrack/config.yaml.

Requires a token with the repo:status scope.

Examples:
  prtrack status_commit abc123 pending "processing" ci/tracker --repo acme/widgets
  prtrack status_commit abc123 success "done" ci/tracker https://ci.example.com/run/7 --repo acme/widgets`,
	Args: cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetURL := ""
		if len(args) == 5 {
			targetURL = args[4]
		}
		return runStatusCommit(context.Background(), args[0], github.CommitStatusRequest{
			State:       args[1],
			Description: args[2],
			Context:     args[3],
			TargetURL:   targetURL,
		})
	},
}

func runStatusCommit(ctx context.Context, sha string, status github.CommitStatusRequest) error {
	if !github.ValidStatusState(status.State) {
		return fmt.Errorf("invalid state %q (choose from %s)",
			status.State, strings.Join(github.StatusStates, ", "))
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return err
	}
	repo, repoSource := cfg.ResolveRepo(statusCommitRepo)
	if repo == "" {
		return fmt.Errorf("--repo is required (or set repo in %s)", config.ConfigPath)
	}
	slog.Debug("options resolved", "repo", repo, "repo_source", repoSource)

	owner, name, err := github.ParseRepo(repo)
	if err != nil {
		return err
	}

	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}

	created, err := client.CreateCommitStatus(ctx, owner, name, sha, status)
	if err != nil {
		return err
	}

	slog.Debug("commit status created",
		"sha", sha, "state", created.State, "context", created.Context)
	return nil
}

func init() {
	statusCommitCmd.Flags().StringVar(&statusCommitRepo, "repo", "", "Repository in owner/name format")
	rootCmd.AddCommand(statusCommitCmd)
}
