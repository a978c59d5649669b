package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prtrack/prtrack/pkg/config"
	"github.com/prtrack/prtrack/pkg/github"
	"github.com/prtrack/prtrack/pkg/ledger"
	"github.com/prtrack/prtrack/pkg/tracker"
	"github.com/spf13/cobra"
)

var (
	findPROrg             string
	findPRSuccessfulCheck string
	findPRSkipDrafts      bool
	findPRStatusFile      string
)

var findPRCmd = &cobra.Command{
	Use:   "find_pr <repo>",
	Short: "Find the next PR that needs to be processed",
	Long: `Find the most recently updated open pull request whose head commit is not
recorded in the ledger.

Pull requests are scanned newest-updated first. A pull request is skipped
when the ledger already holds its current head SHA; a new head commit on a
previously processed pull request makes it eligible again.

On a match, exactly one line goes to stdout:

  <number> <issue_url> <updated_at> <head_sha>

Nothing is printed when every pull request is up to date; both cases
exit 0.

Examples:
  prtrack find_pr acme/widgets
  prtrack find_pr acme/widgets --org acme --skip-drafts
  prtrack find_pr acme/widgets --successful-check ci/prow/e2e`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFindPR(context.Background(), args[0])
	},
}

func runFindPR(ctx context.Context, repo string) error {
	owner, name, err := github.ParseRepo(repo)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return err
	}
	org, orgSource := cfg.ResolveOrg(findPROrg)
	statusFile, statusFileSource := cfg.ResolveStatusFile(findPRStatusFile, ledger.DefaultPath)
	slog.Debug("options resolved",
		"org", org, "org_source", orgSource,
		"status_file", statusFile, "status_file_source", statusFileSource)

	led, err := ledger.Open(statusFile)
	if err != nil {
		return err
	}

	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}

	pr, err := tracker.FindNext(ctx, client, led, owner, name, tracker.Options{
		Org:             org,
		SuccessfulCheck: findPRSuccessfulCheck,
		SkipDrafts:      findPRSkipDrafts,
	})
	if err != nil {
		return err
	}
	if pr == nil {
		slog.Debug("no pull request needs processing")
		return nil
	}

	fmt.Printf("%d %s %s %s\n",
		pr.Number, pr.IssueURL, pr.UpdatedAt.Format(time.RFC3339), pr.HeadSHA)
	return nil
}

func init() {
	findPRCmd.Flags().StringVar(&findPROrg, "org", "", "Skip PRs from authors not in this organization")
	findPRCmd.Flags().StringVar(&findPRSuccessfulCheck, "successful-check", "", "Skip PRs whose latest run of this check did not succeed")
	findPRCmd.Flags().BoolVar(&findPRSkipDrafts, "skip-drafts", false, "Skip draft PRs")
	findPRCmd.Flags().StringVar(&findPRStatusFile, "status-file", "", "Path to the ledger file (default \"status.yaml\")")
	rootCmd.AddCommand(findPRCmd)
}
