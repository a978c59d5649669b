// Package tracker selects the next pull request whose head commit has not
// been processed yet, according to a local ledger.
package tracker

import (
	"context"
	"log/slog"

	"github.com/prtrack/prtrack/pkg/github"
	"github.com/prtrack/prtrack/pkg/ledger"
)

// Source is the remote side the selector reads from. ListOpenPullRequests
// must return pull requests ordered by last update, newest first; FindNext
// relies on that ordering and does not re-sort.
type Source interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]github.PullRequest, error)
	IsOrgMember(ctx context.Context, org, login string) (bool, error)
	ListCommitStatuses(ctx context.Context, owner, repo, ref string) ([]github.CommitStatus, error)
}

var _ Source = (*github.Client)(nil)

// Options control which pull requests FindNext considers eligible.
type Options struct {
	// Org restricts selection to pull requests authored by members of this
	// organization. Empty means no membership filtering.
	Org string

	// SuccessfulCheck names a status context that must exist on the head
	// commit with its most recent run in state "success". Empty disables
	// the check.
	SuccessfulCheck string

	// SkipDrafts excludes draft pull requests.
	SkipDrafts bool
}

// FindNext returns the most recently updated open pull request that passes
// the configured filters and whose head commit is not recorded in the
// ledger. It returns (nil, nil) when every pull request has been processed.
//
// A pull request counts as processed only when the ledger entry for its
// issue URL matches the current head SHA exactly. A stale updated_at with
// an unchanged head never re-selects the pull request; a new head commit
// always does.
func FindNext(ctx context.Context, src Source, led *ledger.Ledger, owner, repo string, opts Options) (*github.PullRequest, error) {
	prs, err := src.ListOpenPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	slog.Debug("scanning pull requests", "repo", owner+"/"+repo, "count", len(prs))

	for i := range prs {
		pr := &prs[i]

		if opts.SkipDrafts && pr.Draft {
			slog.Debug("skipping draft", "number", pr.Number)
			continue
		}

		// Membership is checked before the ledger so a non-member PR never
		// consumes the slot, whatever its ledger state.
		if opts.Org != "" {
			member, err := src.IsOrgMember(ctx, opts.Org, pr.AuthorLogin)
			if err != nil {
				return nil, err
			}
			if !member {
				slog.Debug("skipping non-member author",
					"number", pr.Number, "author", pr.AuthorLogin, "org", opts.Org)
				continue
			}
		}

		if entry, ok := led.Get(pr.IssueURL); ok && entry.LastCommitSHA == pr.HeadSHA {
			slog.Debug("head commit already processed", "number", pr.Number, "sha", pr.HeadSHA)
			continue
		}

		if opts.SuccessfulCheck != "" {
			passed, err := latestCheckSucceeded(ctx, src, owner, repo, pr.HeadSHA, opts.SuccessfulCheck)
			if err != nil {
				return nil, err
			}
			if !passed {
				slog.Debug("required check not green",
					"number", pr.Number, "check", opts.SuccessfulCheck)
				continue
			}
		}

		slog.Debug("selected pull request", "number", pr.Number, "sha", pr.HeadSHA)
		return pr, nil
	}

	return nil, nil
}

// latestCheckSucceeded reports whether the most recent run of the named
// status context on the given commit finished in state "success". A commit
// with no run of that context at all does not qualify.
func latestCheckSucceeded(ctx context.Context, src Source, owner, repo, sha, checkContext string) (bool, error) {
	statuses, err := src.ListCommitStatuses(ctx, owner, repo, sha)
	if err != nil {
		return false, err
	}

	var latest *github.CommitStatus
	for i := range statuses {
		st := &statuses[i]
		if st.Context != checkContext {
			continue
		}
		if latest == nil || st.UpdatedAt.After(latest.UpdatedAt) {
			latest = st
		}
	}

	if latest == nil {
		return false, nil
	}
	return latest.State == "success", nil
}
