package main

import (
	"fmt"
	"os"

	"github.com/prtrack/prtrack/pkg/logging"
	"github.com/spf13/cobra"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "prtrack",
	Short: "Track which GitHub pull requests had their head commit processed",
	Long: `prtrack talks to GitHub and records which pull request head commits have
been processed, in a small YAML ledger kept next to your automation.

A typical automation loop:
  1. find_pr picks the next pull request whose head commit is new
  2. the automation runs against that commit
  3. processed_pr records the head commit in the ledger
  4. status_commit reports the outcome back to GitHub

Authentication uses a bearer token from GITHUB_TOKEN or
PRTRACK_GITHUB_TOKEN. stdout carries only command output; diagnostics go
to stderr.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Initialize(debugFlag)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Show debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
