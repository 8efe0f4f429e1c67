package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a step input that is missing or invalid.
// Message is shown verbatim; Input names the offending step input.
type ConfigError struct {
	Input      string
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("invalid input '%s'", e.Input)
	}
	if e.Suggestion != "" {
		msg += "\n  " + e.Suggestion
	}
	return msg
}

// ParseError reports a malformed entry of the secrets input.
// The message wording is relied upon by pipeline users, so Error returns
// Message followed by the entry exactly as it was split from the input.
type ParseError struct {
	Entry   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s Input: \"%s\"", e.Message, e.Entry)
}

// ResponseError is returned when a Vault response lacks the expected
// envelope or a selector does not resolve.
type ResponseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// FetchError is a transport-level failure talking to Vault, including
// non-2xx responses.
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("vault returned status %d for %s", e.StatusCode, e.URL)
		if body := strings.TrimSpace(e.Body); body != "" {
			msg += ": " + body
		}
		return msg
	}
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Suggestion returns a hint for a failed run, or "" when there is none.
func Suggestion(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		switch fe.StatusCode {
		case 0:
			errStr := strings.ToLower(fe.Error())
			if strings.Contains(errStr, "timeout") {
				return "The request timed out. Check that the runner can reach the Vault address"
			}
			if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
				return "Unable to connect. Check the 'url' input"
			}
		case 403:
			return "Check that the token has a policy granting read on the path"
		case 404:
			return "Check the secret path and the 'kv-version' input"
		}
		return ""
	}

	var re *ResponseError
	if errors.As(err, &re) {
		return "Double check the key and the Vault path"
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return "Entries look like 'path key | NAME', separated by ';'"
	}

	return ""
}
