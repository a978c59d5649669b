package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prtrack/prtrack/pkg/checks"
	"github.com/prtrack/prtrack/pkg/github"
	"github.com/spf13/cobra"
)

var (
	listChecksLatestByContext bool
	listChecksState           string
	listChecksContextRe       string
	listChecksTargetURLRe     string
	listChecksCreatedAtGe     string
	listChecksProwPath        string
)

var listChecksCmd = &cobra.Command{
	Use:   "list_checks <repo> <pr_number>",
	Short: "List checks for a PR head commit",
	Long: `List the commit statuses of a pull request's head commit as an aligned
table. Filters apply in a fixed order: latest-by-context, state, context
pattern, target URL pattern, created-at cutoff.

With --prow-download-path, the artifacts of each prow run behind the
remaining statuses are fetched with gsutil into a directory named after
the run ID.

Examples:
  prtrack list_checks acme/widgets 42
  prtrack list_checks acme/widgets 42 --latest-by-context --filter-by-state failure
  prtrack list_checks acme/widgets 42 --filter-by-context-re 'e2e-aws$' --prow-download-path junit/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid PR number %q", args[1])
		}
		return runListChecks(context.Background(), args[0], number)
	},
}

func runListChecks(ctx context.Context, repo string, number int) error {
	owner, name, err := github.ParseRepo(repo)
	if err != nil {
		return err
	}

	filter := checks.Filter{
		LatestByContext: listChecksLatestByContext,
		State:           listChecksState,
		ContextRe:       listChecksContextRe,
		TargetURLRe:     listChecksTargetURLRe,
	}
	if listChecksCreatedAtGe != "" {
		since, err := time.Parse(time.RFC3339, listChecksCreatedAtGe)
		if err != nil {
			return fmt.Errorf("invalid --filter-by-created-at-ge value %q: %w", listChecksCreatedAtGe, err)
		}
		filter.CreatedSince = since
	}

	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}

	pr, err := client.GetPullRequest(ctx, owner, name, number)
	if err != nil {
		return err
	}

	statuses, err := client.ListCommitStatuses(ctx, owner, name, pr.HeadSHA)
	if err != nil {
		return err
	}

	filtered, err := checks.Apply(statuses, filter)
	if err != nil {
		return err
	}

	if err := checks.WriteTable(os.Stdout, filtered); err != nil {
		return err
	}

	if listChecksProwPath == "" {
		return nil
	}

	// Derive every run's coordinates up front so a malformed status fails
	// the command before any download starts.
	jobs := make([]*checks.ProwJob, 0, len(filtered))
	for _, st := range filtered {
		job, err := checks.ParseProwJob(st)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	fmt.Println()
	for _, job := range jobs {
		err := job.Download(ctx, checks.DownloadOptions{
			Owner:        owner,
			Repo:         name,
			PRNumber:     number,
			ArtifactPath: listChecksProwPath,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func init() {
	listChecksCmd.Flags().BoolVar(&listChecksLatestByContext, "latest-by-context", false, "Only show the latest check for every context by created_at time")
	listChecksCmd.Flags().StringVar(&listChecksState, "filter-by-state", "", "Only show checks with this state")
	listChecksCmd.Flags().StringVar(&listChecksContextRe, "filter-by-context-re", "", "Only show checks with context matching this regexp; checks without a context are excluded")
	listChecksCmd.Flags().StringVar(&listChecksTargetURLRe, "filter-by-target-url-re", "", "Only show checks with target_url matching this regexp; checks without a target_url are excluded")
	listChecksCmd.Flags().StringVar(&listChecksCreatedAtGe, "filter-by-created-at-ge", "", "Only show checks with created_at >= the given RFC 3339 time")
	listChecksCmd.Flags().StringVar(&listChecksProwPath, "prow-download-path", "", "Download prow artifacts below this path (e.g. 'junit/')")
	rootCmd.AddCommand(listChecksCmd)
}
