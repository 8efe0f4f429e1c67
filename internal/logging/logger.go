package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/systmms/vaultstep/internal/actions"
)

// Logger provides leveled logging with redaction support.
//
// Inside a GitHub Actions job the warning, error and debug levels are written
// as workflow commands so the runner can annotate the log; elsewhere they
// use colored symbols on stderr.
type Logger struct {
	out      io.Writer
	debug    bool
	noColor  bool
	workflow bool
	secrets  []string
	mu       sync.Mutex
}

// New creates a new logger instance. Workflow command mode is enabled when
// GITHUB_ACTIONS is "true", in which case the logger writes to stdout.
func New(debug, noColor bool) *Logger {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return NewWithWriter(os.Stdout, debug, noColor, true)
	}
	return NewWithWriter(os.Stderr, debug, noColor, false)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, debug, noColor, workflow bool) *Logger {
	return &Logger{
		out:      w,
		debug:    debug,
		noColor:  noColor,
		workflow: workflow,
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.workflow:
		l.println(msg)
	case l.noColor:
		l.println("✓ " + msg)
	default:
		l.println("\033[32m✓\033[0m " + msg)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.workflow:
		l.command("warning", msg)
	case l.noColor:
		l.println("⚠ " + msg)
	default:
		l.println("\033[33m⚠\033[0m " + msg)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.workflow:
		l.command("error", msg)
	case l.noColor:
		l.println("✗ " + msg)
	default:
		l.println("\033[31m✗\033[0m " + msg)
	}
}

// Debug logs a debug message. In workflow mode the runner decides whether
// debug lines are shown, so they are always emitted.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.workflow {
		l.command("debug", fmt.Sprintf(format, args...))
		return
	}
	if !l.debug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !l.noColor {
		l.println("\033[36m[DEBUG]\033[0m " + msg)
	} else {
		l.println("[DEBUG] " + msg)
	}
}

// AddSecret registers a value that is replaced with [REDACTED] in every
// message logged afterwards.
func (l *Logger) AddSecret(value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.secrets = append(l.secrets, value)
}

func (l *Logger) command(name, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = actions.IssueCommand(l.out, name, nil, Redact(msg, l.secrets))
}

func (l *Logger) println(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.out, Redact(msg, l.secrets))
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 { // Only redact non-trivial secrets
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
