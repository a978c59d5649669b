package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prtrack/prtrack/pkg/github"
	"github.com/spf13/cobra"
)

var addCommentCmd = &cobra.Command{
	Use:   "add_comment <repo> <issue_number> <body>",
	Short: "Add a comment to an issue or PR",
	Long: `Post a comment on an issue or pull request.

Examples:
  prtrack add_comment acme/widgets 42 "processed, artifacts at https://ci.example.com/run/7"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid issue number %q", args[1])
		}
		return runAddComment(context.Background(), args[0], number, args[2])
	},
}

func runAddComment(ctx context.Context, repo string, number int, body string) error {
	owner, name, err := github.ParseRepo(repo)
	if err != nil {
		return err
	}

	client, err := github.NewClientFromEnv()
	if err != nil {
		return err
	}

	id, err := client.CreateIssueComment(ctx, owner, name, number, body)
	if err != nil {
		return err
	}

	slog.Debug("comment created", "issue", number, "comment_id", id)
	return nil
}

func init() {
	rootCmd.AddCommand(addCommentCmd)
}
