package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// APIError represents a GitHub API error response
type APIError struct {
	StatusCode int
	Message    string
	Errors     []APIErrorDetail
	// Rate limit information when rate limited
	RateLimit *RateLimitInfo
}

// APIErrorDetail represents individual error details from GitHub
type APIErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// RateLimitInfo contains rate limit information from response headers
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     int64 // Unix timestamp
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// IsRateLimitError returns true if the error is a rate limit error
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit != nil {
			return true
		}
	}
	return false
}

// IsNotFoundError returns true if the error is a not found error
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsAuthenticationError returns true if the error is an authentication
// error (bad or missing token)
func IsAuthenticationError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsPermissionError returns true if the error is a permission error
// (valid token, insufficient scope)
func IsPermissionError(err error) bool {
	if IsRateLimitError(err) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// convertFromGitHubError converts go-github error types to our APIError.
// Transport-level errors that never reached the API pass through unchanged.
func convertFromGitHubError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		apiErr := &APIError{Message: errResp.Message}
		if errResp.Response != nil {
			apiErr.StatusCode = errResp.Response.StatusCode
		}
		for _, e := range errResp.Errors {
			apiErr.Errors = append(apiErr.Errors, APIErrorDetail{
				Resource: e.Resource,
				Field:    e.Field,
				Code:     e.Code,
				Message:  e.Message,
			})
		}
		return apiErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		apiErr := &APIError{
			StatusCode: http.StatusForbidden,
			Message:    rateErr.Message,
			RateLimit: &RateLimitInfo{
				Limit:     rateErr.Rate.Limit,
				Remaining: rateErr.Rate.Remaining,
				Reset:     rateErr.Rate.Reset.Unix(),
			},
		}
		if rateErr.Response != nil {
			apiErr.StatusCode = rateErr.Response.StatusCode
		}
		return apiErr
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		apiErr := &APIError{
			StatusCode: http.StatusForbidden,
			Message:    abuseErr.Message,
			RateLimit:  &RateLimitInfo{},
		}
		if abuseErr.Response != nil {
			apiErr.StatusCode = abuseErr.Response.StatusCode
		}
		return apiErr
	}

	return err
}
