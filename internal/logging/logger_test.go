package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, true, false)

	logger.Info("fetched %s", "secret/app")
	logger.Warn("careful")
	logger.Error("failed")
	logger.Debug("hidden")

	assert.Equal(t, "✓ fetched secret/app\n⚠ careful\n✗ failed\n", buf.String())
}

func TestLogger_ColorOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, false, false)

	logger.Info("done")

	assert.Equal(t, "\033[32m✓\033[0m done\n", buf.String())
}

func TestLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true, true, false)

	logger.Debug("reading %s", "secret/app")

	assert.Equal(t, "[DEBUG] reading secret/app\n", buf.String())
}

func TestLogger_WorkflowCommands(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false, false, true)

	logger.Info("plain")
	logger.Warn("two\nlines")
	logger.Error("100%% broken")
	logger.Debug("reading %s", "secret/app")

	assert.Equal(t,
		"plain\n"+
			"::warning::two%0Alines\n"+
			"::error::100%25 broken\n"+
			"::debug::reading secret/app\n",
		buf.String())
}

func TestLogger_AddSecret(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, true, true, false)

		logger.Info("before s.abcdef")
		logger.AddSecret("s.abcdef")
		logger.Error("vault returned status 403: token s.abcdef denied")
		logger.Debug("s.abcdef")

		assert.Equal(t,
			"✓ before s.abcdef\n"+
				"✗ vault returned status 403: token [REDACTED] denied\n"+
				"[DEBUG] [REDACTED]\n",
			buf.String())
	})

	t.Run("workflow", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, false, false, true)

		logger.AddSecret("hunter22")
		logger.Error("body: hunter22")

		assert.Equal(t, "::error::body: [REDACTED]\n", buf.String())
	})

	t.Run("short values are kept", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, false, true, false)

		logger.AddSecret("1")
		logger.Info("exported 1 secret(s)")

		assert.Equal(t, "✓ exported 1 secret(s)\n", buf.String())
	})
}

func TestRedactFunction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "The password is secret123",
			secrets:  []string{"secret123"},
			expected: "The password is [REDACTED]",
		},
		{
			name:     "multiple secrets redacted",
			input:    "User admin with password secret123 and API key abc123",
			secrets:  []string{"admin", "secret123", "abc123"},
			expected: "User [REDACTED] with password [REDACTED] and API key [REDACTED]",
		},
		{
			name:     "empty secret ignored",
			input:    "This has no secrets",
			secrets:  []string{""},
			expected: "This has no secrets",
		},
		{
			name:     "short secret ignored",
			input:    "Short secret: ab",
			secrets:  []string{"ab"},
			expected: "Short secret: ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Redact(tt.input, tt.secrets))
		})
	}
}
