package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// fakeToken is the only bearer token the fake API accepts.
const fakeToken = "test-token"

func issueURL(number int) string {
	return fmt.Sprintf("https://api.github.com/repos/acme/widgets/issues/%d", number)
}

func fakePR(number int, author, headSHA, updated string, draft bool) map[string]interface{} {
	return map[string]interface{}{
		"number":    number,
		"title":     fmt.Sprintf("change #%d", number),
		"state":     "open",
		"draft":     draft,
		"html_url":  fmt.Sprintf("https://github.com/acme/widgets/pull/%d", number),
		"issue_url": issueURL(number),
		"user":      map[string]interface{}{"login": author},
		"head": map[string]interface{}{
			"ref": fmt.Sprintf("feature-%d", number),
			"sha": headSHA,
		},
		"created_at": "2026-02-20T10:00:00Z",
		"updated_at": updated,
	}
}

func fakeStatus(id int, context, state, targetURL, created string) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"context":     context,
		"state":       state,
		"target_url":  targetURL,
		"description": state,
		"created_at":  created,
		"updated_at":  created,
	}
}

// newFakeGitHub serves a small fixed acme/widgets repository: three open
// pull requests (newest updated first), their commits and statuses, org
// memberships for acmeorg, and write endpoints for statuses and comments.
func newFakeGitHub() http.Handler {
	prs := []map[string]interface{}{
		fakePR(9, "alice", "aaa111", "2026-03-05T12:00:00Z", false),
		fakePR(7, "bob", "bbb222", "2026-03-04T09:30:00Z", false),
		fakePR(5, "carol", "ccc333", "2026-03-03T08:15:00Z", true),
	}

	members := map[string]bool{"alice": true, "carol": true}

	statuses := map[string][]map[string]interface{}{
		"aaa111": {
			fakeStatus(1, "tide", "pending", "", "2026-03-05T11:30:00Z"),
			fakeStatus(2, "ci/prow/e2e", "success",
				"https://prow.example.com/view/gs/test-platform-results/pr-logs/pull/acme_widgets/9/pull-ci-acme-widgets-e2e/1881188118811881",
				"2026-03-05T11:00:00Z"),
			fakeStatus(3, "ci/prow/e2e", "failure",
				"https://prow.example.com/view/gs/test-platform-results/pr-logs/pull/acme_widgets/9/pull-ci-acme-widgets-e2e/1771177117711771",
				"2026-03-04T22:00:00Z"),
		},
		"ccc333": {
			fakeStatus(4, "ci/prow/e2e", "failure",
				"https://prow.example.com/view/gs/test-platform-results/pr-logs/pull/acme_widgets/5/pull-ci-acme-widgets-e2e/1661166116611661",
				"2026-03-03T07:00:00Z"),
		},
	}

	commits := map[string][]map[string]interface{}{
		"9": {
			{"sha": "000aaa", "commit": map[string]interface{}{"message": "base work"}},
			{"sha": "aaa111", "commit": map[string]interface{}{"message": "head work"}},
		},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, prs)
	})

	mux.HandleFunc("GET /repos/acme/widgets/pulls/{number}", func(w http.ResponseWriter, r *http.Request) {
		for _, pr := range prs {
			if strconv.Itoa(pr["number"].(int)) == r.PathValue("number") {
				writeJSON(w, http.StatusOK, pr)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, errBody("Not Found"))
	})

	mux.HandleFunc("GET /repos/acme/widgets/pulls/{number}/commits", func(w http.ResponseWriter, r *http.Request) {
		list, ok := commits[r.PathValue("number")]
		if !ok {
			writeJSON(w, http.StatusNotFound, errBody("Not Found"))
			return
		}
		writeJSON(w, http.StatusOK, list)
	})

	mux.HandleFunc("GET /repos/acme/widgets/commits/{sha}/statuses", func(w http.ResponseWriter, r *http.Request) {
		list := statuses[r.PathValue("sha")]
		if list == nil {
			list = []map[string]interface{}{}
		}
		writeJSON(w, http.StatusOK, list)
	})

	mux.HandleFunc("GET /orgs/acmeorg/memberships/{login}", func(w http.ResponseWriter, r *http.Request) {
		login := r.PathValue("login")
		if !members[login] {
			writeJSON(w, http.StatusNotFound, errBody("Not Found"))
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"state":        "active",
			"organization": map[string]interface{}{"login": "acmeorg"},
			"user":         map[string]interface{}{"login": login},
		})
	})

	mux.HandleFunc("POST /repos/acme/widgets/statuses/{sha}", func(w http.ResponseWriter, r *http.Request) {
		// The "forbidden" commit stands in for a token without repo:status.
		if r.PathValue("sha") == "forbidden" {
			writeJSON(w, http.StatusForbidden, errBody("Resource not accessible by personal access token"))
			return
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody("Bad Request"))
			return
		}
		req["id"] = 1000
		writeJSON(w, http.StatusCreated, req)
	})

	mux.HandleFunc("POST /repos/acme/widgets/issues/{number}/comments", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody("Bad Request"))
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":   555,
			"body": req["body"],
		})
	})

	return authMiddleware(mux)
}

func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			writeJSON(w, http.StatusUnauthorized, errBody("Bad credentials"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errBody(message string) map[string]interface{} {
	return map[string]interface{}{"message": message}
}
