// Package actions implements the pipeline host boundary: reading step
// inputs and publishing environment variables, outputs and masks the way a
// GitHub Actions runner expects them.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Inputs resolves step inputs by name. A missing input is "".
type Inputs interface {
	GetInput(name string) string
}

// Outputs publishes resolved values to later pipeline steps.
type Outputs interface {
	ExportVariable(name, value string) error
	SetOutput(name, value string) error
	SetSecret(value string)
}

// Host talks to a GitHub Actions runner through environment variables,
// environment files and workflow commands on stdout.
type Host struct {
	Stdout io.Writer
	Getenv func(string) string
	Setenv func(key, value string) error

	delimiter func() string
	mu        sync.Mutex
}

// NewHost returns a Host bound to the current process.
func NewHost() *Host {
	return &Host{
		Stdout: os.Stdout,
		Getenv: os.Getenv,
		Setenv: os.Setenv,
	}
}

// InputEnvName returns the environment variable the runner uses for an input.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// GetInput returns the trimmed value of INPUT_<NAME>.
func (h *Host) GetInput(name string) string {
	return strings.TrimSpace(h.getenv(InputEnvName(name)))
}

// ExportVariable sets name in this process and, through GITHUB_ENV, in
// every later step of the job.
func (h *Host) ExportVariable(name, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Setenv != nil {
		if err := h.Setenv(name, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}

	if path := h.getenv("GITHUB_ENV"); path != "" {
		return h.appendFileCommand(path, name, value)
	}
	return IssueCommand(h.Stdout, "set-env", map[string]string{"name": name}, value)
}

// SetOutput publishes name as a step output.
func (h *Host) SetOutput(name, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if path := h.getenv("GITHUB_OUTPUT"); path != "" {
		return h.appendFileCommand(path, name, value)
	}
	_, _ = fmt.Fprintln(h.Stdout)
	return IssueCommand(h.Stdout, "set-output", map[string]string{"name": name}, value)
}

// SetSecret asks the runner to mask value in all later log output.
func (h *Host) SetSecret(value string) {
	if value == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = IssueCommand(h.Stdout, "add-mask", nil, value)
}

func (h *Host) getenv(key string) string {
	if h.Getenv == nil {
		return os.Getenv(key)
	}
	return h.Getenv(key)
}

// appendFileCommand writes a heredoc style entry to an environment file:
//
//	name<<ghadelimiter_<uuid>
//	value
//	ghadelimiter_<uuid>
func (h *Host) appendFileCommand(path, name, value string) error {
	delimiter := h.newDelimiter()
	if strings.Contains(name, delimiter) {
		return fmt.Errorf("unexpected input: name should not contain the delimiter %q", delimiter)
	}
	if strings.Contains(value, delimiter) {
		return fmt.Errorf("unexpected input: value should not contain the delimiter %q", delimiter)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("missing file at path %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	entry := fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (h *Host) newDelimiter() string {
	if h.delimiter != nil {
		return h.delimiter()
	}
	return "ghadelimiter_" + uuid.NewString()
}
