package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prtrack/prtrack/pkg/github"
	"github.com/spf13/cobra"
)

var loadPRCmd = &cobra.Command{
	Use:   "load_pr <repo> <pr_number>",
	Short: "Load details for a given PR",
	Long: `Print the find_pr one-line format for a single pull request, without
consulting the ledger:

  <number> <issue_url> <updated_at> <head_sha>

The head SHA is taken from the pull request's commit list (newest last).

Examples:
  prtrack load_pr acme/widgets 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid PR number %q", args[1])
		}
		return runLoadPR(context.Background(), args[0], number)
	},
}

func runLoadPR(ctx context.Context, repo string, number int) error {
	owner, name, err := github.ParseRepo(repo)
	if err != nil {
		return err
	}

	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}

	pr, err := client.GetPullRequest(ctx, owner, name, number)
	if err != nil {
		return err
	}

	commits, err := client.ListPullRequestCommits(ctx, owner, name, number)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return fmt.Errorf("pull request %d has no commits", number)
	}
	headSHA := commits[len(commits)-1].SHA

	fmt.Printf("%d %s %s %s\n",
		pr.Number, pr.IssueURL, pr.UpdatedAt.Format(time.RFC3339), headSHA)
	return nil
}

func init() {
	rootCmd.AddCommand(loadPRCmd)
}
