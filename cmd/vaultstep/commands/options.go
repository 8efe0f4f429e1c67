package commands

import (
	"github.com/systmms/vaultstep/internal/actions"
	"github.com/systmms/vaultstep/internal/logging"
	"github.com/systmms/vaultstep/internal/vault"
)

// Options holds the global flags shared by every command.
type Options struct {
	InputsFile  string
	MetricsFile string
	Debug       bool
	NoColor     bool

	Logger *logging.Logger

	// Host and Reader default to the GitHub Actions runner and a plain
	// HTTP client when nil.
	Host   *actions.Host
	Reader vault.Reader
}

func (o *Options) logger() *logging.Logger {
	if o.Logger == nil {
		o.Logger = logging.New(o.Debug, o.NoColor)
	}
	return o.Logger
}
