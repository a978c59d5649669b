package github

import (
	"fmt"
	"regexp"
	"strings"
)

// repoPattern matches "owner/name" repository references
var repoPattern = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)

// ParseRepo parses an "owner/name" repository reference.
// Returns the owner and name parts, or an error for anything else
// (full URLs, bare names, empty strings).
func ParseRepo(repo string) (owner, name string, err error) {
	matches := repoPattern.FindStringSubmatch(strings.TrimSpace(repo))
	if matches == nil {
		return "", "", fmt.Errorf("invalid repository format: %q (expected owner/name)", repo)
	}
	return matches[1], matches[2], nil
}
