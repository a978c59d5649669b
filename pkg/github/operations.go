package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v68/github"
)

// ListOpenPullRequests lists all open pull requests for a repository,
// ordered by last update descending (most recently updated first). The
// ordering comes from the API and is part of this method's contract; the
// selector depends on it.
func (c *Client) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:     "open",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allPRs []PullRequest
	for {
		prs, resp, err := c.GitHubClient().PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", convertFromGitHubError(err))
		}
		logRateLimit("list_pull_requests", resp)

		for _, pr := range prs {
			allPRs = append(allPRs, convertFromGitHubPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// GetPullRequest fetches a single pull request
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, resp, err := c.GitHubClient().PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", convertFromGitHubError(err))
	}
	logRateLimit("get_pull_request", resp)

	converted := convertFromGitHubPullRequest(pr)
	return &converted, nil
}

// ListPullRequestCommits lists the commits of a pull request in API order,
// oldest first. The last element is the PR's current head commit.
func (c *Client) ListPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]Commit, error) {
	opts := &github.ListOptions{PerPage: 100}

	var allCommits []Commit
	for {
		commits, resp, err := c.GitHubClient().PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull request commits: %w", convertFromGitHubError(err))
		}
		logRateLimit("list_pull_request_commits", resp)

		for _, commit := range commits {
			allCommits = append(allCommits, convertFromGitHubCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allCommits, nil
}

// IsOrgMember reports whether login is a member of org.
//
// A membership that is not visible (404) means "not a member", never an
// error: the API legitimately answers not-found both for non-members and
// for private memberships the token cannot see. Any other failure is
// returned to the caller.
func (c *Client) IsOrgMember(ctx context.Context, org, login string) (bool, error) {
	membership, resp, err := c.GitHubClient().Organizations.GetOrgMembership(ctx, login, org)
	if err != nil {
		converted := convertFromGitHubError(err)
		if IsNotFoundError(converted) {
			return false, nil
		}
		if IsAuthenticationError(converted) || IsPermissionError(converted) {
			return false, fmt.Errorf("failed to check membership of %s in %s (requires read:org scope): %w", login, org, converted)
		}
		return false, fmt.Errorf("failed to check membership of %s in %s: %w", login, org, converted)
	}
	logRateLimit("get_org_membership", resp)

	return membership.GetOrganization().GetLogin() == org, nil
}

// ListCommitStatuses lists all commit statuses for a ref (SHA, branch, or
// tag), paginated to exhaustion. GitHub returns statuses newest first.
func (c *Client) ListCommitStatuses(ctx context.Context, owner, repo, ref string) ([]CommitStatus, error) {
	opts := &github.ListOptions{PerPage: 100}

	var allStatuses []CommitStatus
	for {
		statuses, resp, err := c.GitHubClient().Repositories.ListStatuses(ctx, owner, repo, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commit statuses: %w", convertFromGitHubError(err))
		}
		logRateLimit("list_commit_statuses", resp)

		for _, status := range statuses {
			allStatuses = append(allStatuses, convertFromGitHubStatus(status))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allStatuses, nil
}

// CreateCommitStatus attaches a status to a commit SHA
func (c *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha string, status CommitStatusRequest) (*CommitStatus, error) {
	repoStatus := &github.RepoStatus{
		State:       github.String(status.State),
		Description: github.String(status.Description),
		Context:     github.String(status.Context),
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = github.String(status.TargetURL)
	}

	created, resp, err := c.GitHubClient().Repositories.CreateStatus(ctx, owner, repo, sha, repoStatus)
	if err != nil {
		converted := convertFromGitHubError(err)
		if IsPermissionError(converted) {
			return nil, fmt.Errorf("failed to create commit status (requires repo:status scope): %w", converted)
		}
		return nil, fmt.Errorf("failed to create commit status: %w", converted)
	}
	logRateLimit("create_commit_status", resp)

	result := convertFromGitHubStatus(created)
	return &result, nil
}

// CreateIssueComment creates a new comment on an issue or PR
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) (int64, error) {
	comment, resp, err := c.GitHubClient().Issues.CreateComment(ctx, owner, repo, issueNumber, &github.IssueComment{Body: &body})
	if err != nil {
		return 0, fmt.Errorf("failed to create issue comment: %w", convertFromGitHubError(err))
	}
	logRateLimit("create_issue_comment", resp)

	return comment.GetID(), nil
}

// convertFromGitHubPullRequest converts a github.PullRequest to our PullRequest type
func convertFromGitHubPullRequest(pr *github.PullRequest) PullRequest {
	headSHA := ""
	if head := pr.GetHead(); head != nil {
		headSHA = head.GetSHA()
	}

	author := ""
	if user := pr.GetUser(); user != nil {
		author = user.GetLogin()
	}

	return PullRequest{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		State:       pr.GetState(),
		HTMLURL:     pr.GetHTMLURL(),
		IssueURL:    pr.GetIssueURL(),
		HeadSHA:     headSHA,
		AuthorLogin: author,
		Draft:       pr.GetDraft(),
		CreatedAt:   pr.GetCreatedAt().Time,
		UpdatedAt:   pr.GetUpdatedAt().Time,
	}
}

// convertFromGitHubCommit converts a github.RepositoryCommit to our Commit type
func convertFromGitHubCommit(commit *github.RepositoryCommit) Commit {
	author := ""
	if user := commit.GetAuthor(); user != nil {
		author = user.GetLogin()
	}

	return Commit{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
		Author:  author,
	}
}

// convertFromGitHubStatus converts a github.RepoStatus to our CommitStatus type
func convertFromGitHubStatus(status *github.RepoStatus) CommitStatus {
	return CommitStatus{
		ID:          status.GetID(),
		Context:     status.GetContext(),
		State:       status.GetState(),
		TargetURL:   status.GetTargetURL(),
		Description: status.GetDescription(),
		CreatedAt:   status.GetCreatedAt().Time,
		UpdatedAt:   status.GetUpdatedAt().Time,
	}
}

// logRateLimit records the rate limit state after an API call
func logRateLimit(op string, resp *github.Response) {
	if resp == nil {
		return
	}
	slog.Debug("GitHub API call",
		"op", op,
		"rate_limit", resp.Rate.Limit,
		"rate_remaining", resp.Rate.Remaining,
	)
}
