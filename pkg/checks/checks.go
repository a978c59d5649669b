// Package checks filters the commit statuses of a pull request head and
// fetches prow artifacts for the runs behind them.
package checks

import (
	"fmt"
	"io"
	"regexp"
	"text/tabwriter"
	"time"

	"github.com/prtrack/prtrack/pkg/github"
)

// Filter narrows a status listing. Zero values disable the corresponding
// criterion. Criteria apply in a fixed order: newest run per context first,
// then state, context pattern, target URL pattern, and creation time.
type Filter struct {
	// LatestByContext keeps only the most recent run of each context.
	LatestByContext bool

	// State keeps only statuses in this state (error, failure, pending,
	// success).
	State string

	// ContextRe keeps only statuses whose context matches this pattern.
	// Statuses without a context are dropped.
	ContextRe string

	// TargetURLRe keeps only statuses whose target URL matches this
	// pattern. Statuses without a target URL are dropped.
	TargetURLRe string

	// CreatedSince keeps only statuses created at or after this time.
	CreatedSince time.Time
}

// LatestByContext reduces a status listing to the most recent run of each
// context. Contexts keep the order they first appear in.
func LatestByContext(statuses []github.CommitStatus) []github.CommitStatus {
	latest := make(map[string]int)
	var order []string

	for i := range statuses {
		ctx := statuses[i].Context
		j, seen := latest[ctx]
		if !seen {
			latest[ctx] = i
			order = append(order, ctx)
			continue
		}
		if statuses[i].CreatedAt.After(statuses[j].CreatedAt) {
			latest[ctx] = i
		}
	}

	out := make([]github.CommitStatus, 0, len(order))
	for _, ctx := range order {
		out = append(out, statuses[latest[ctx]])
	}
	return out
}

// Apply runs the filter pipeline over a status listing.
func Apply(statuses []github.CommitStatus, f Filter) ([]github.CommitStatus, error) {
	out := statuses
	if f.LatestByContext {
		out = LatestByContext(out)
	}

	if f.State != "" {
		out = filterByState(out, f.State)
	}

	if f.ContextRe != "" {
		re, err := regexp.Compile(f.ContextRe)
		if err != nil {
			return nil, fmt.Errorf("invalid context pattern: %w", err)
		}
		out = filterByContext(out, re)
	}

	if f.TargetURLRe != "" {
		re, err := regexp.Compile(f.TargetURLRe)
		if err != nil {
			return nil, fmt.Errorf("invalid target URL pattern: %w", err)
		}
		out = filterByTargetURL(out, re)
	}

	if !f.CreatedSince.IsZero() {
		out = filterByCreatedSince(out, f.CreatedSince)
	}

	return out, nil
}

func filterByState(statuses []github.CommitStatus, state string) []github.CommitStatus {
	out := make([]github.CommitStatus, 0, len(statuses))
	for _, st := range statuses {
		if st.State == state {
			out = append(out, st)
		}
	}
	return out
}

func filterByContext(statuses []github.CommitStatus, re *regexp.Regexp) []github.CommitStatus {
	out := make([]github.CommitStatus, 0, len(statuses))
	for _, st := range statuses {
		if st.Context != "" && re.MatchString(st.Context) {
			out = append(out, st)
		}
	}
	return out
}

func filterByTargetURL(statuses []github.CommitStatus, re *regexp.Regexp) []github.CommitStatus {
	out := make([]github.CommitStatus, 0, len(statuses))
	for _, st := range statuses {
		if st.TargetURL != "" && re.MatchString(st.TargetURL) {
			out = append(out, st)
		}
	}
	return out
}

func filterByCreatedSince(statuses []github.CommitStatus, since time.Time) []github.CommitStatus {
	out := make([]github.CommitStatus, 0, len(statuses))
	for _, st := range statuses {
		if !st.CreatedAt.Before(since) {
			out = append(out, st)
		}
	}
	return out
}

// WriteTable renders a status listing as an aligned table.
func WriteTable(w io.Writer, statuses []github.CommitStatus) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "created_at\tstate\tcontext\ttarget_url")
	for _, st := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			st.CreatedAt.Format(time.RFC3339), st.State, st.Context, st.TargetURL)
	}
	return tw.Flush()
}
