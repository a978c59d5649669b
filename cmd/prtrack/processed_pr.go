package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prtrack/prtrack/pkg/config"
	"github.com/prtrack/prtrack/pkg/ledger"
	"github.com/spf13/cobra"
)

var processedPRStatusFile string

var processedPRCmd = &cobra.Command{
	Use:   "processed_pr <issue_url> <number> <last_commit_sha> <updated_at>",
	Short: "Record a PR head commit as processed",
	Long: `Record in the ledger that the given head commit of a pull request has been
processed. The entry is keyed by the PR's issue URL and overwrites any
previous entry for the same URL.

The arguments mirror the find_pr output line, so a shell loop can feed one
into the other:

  read number issue_url updated_at head_sha < <(prtrack find_pr acme/widgets)
  ...
  prtrack processed_pr "$issue_url" "$number" "$head_sha" "$updated_at"`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid PR number %q", args[1])
		}
		return runProcessedPR(args[0], number, args[2], args[3])
	},
}

func runProcessedPR(issueURL string, number int, lastCommitSHA, updatedAt string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return err
	}
	statusFile, statusFileSource := cfg.ResolveStatusFile(processedPRStatusFile, ledger.DefaultPath)
	slog.Debug("options resolved",
		"status_file", statusFile, "status_file_source", statusFileSource)

	led, err := ledger.Open(statusFile)
	if err != nil {
		return err
	}

	led.Put(issueURL, ledger.Entry{
		Number:        number,
		LastCommitSHA: lastCommitSHA,
		UpdatedAt:     updatedAt,
	})

	return led.Save()
}

func init() {
	processedPRCmd.Flags().StringVar(&processedPRStatusFile, "status-file", "", "Path to the ledger file (default \"status.yaml\")")
	rootCmd.AddCommand(processedPRCmd)
}
