package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/systmms/vaultstep/cmd/vaultstep/commands"
	dserrors "github.com/systmms/vaultstep/internal/errors"
	"github.com/systmms/vaultstep/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	memguard.CatchInterrupt()

	opts := &commands.Options{}
	rootCmd := commands.NewRootCommand(opts, fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))

	err := rootCmd.Execute()
	memguard.Purge()

	if err != nil {
		logger := opts.Logger
		if logger == nil {
			logger = logging.New(opts.Debug, opts.NoColor)
		}
		logger.Error("%v", err)
		if s := dserrors.Suggestion(err); s != "" {
			logger.Info("Try: %s", s)
		}
		os.Exit(1)
	}
}
