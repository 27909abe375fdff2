package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/config"
	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/logging"
	"github.com/gorewood/wikimark/internal/output"
	"github.com/gorewood/wikimark/internal/wiki"
)

// cmdEnv is what a command needs from its global flags and the config file.
type cmdEnv struct {
	cfg     *config.Config
	dialect dialect.Dialect
	logger  *logging.Logger
	printer *output.Printer
}

// rootString reads a persistent string flag.
func rootString(cmd *cobra.Command, name string) (string, bool) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return "", false
	}
	return flag.Value.String(), flag.Changed
}

func rootBool(cmd *cobra.Command, name string) bool {
	v, _ := rootString(cmd, name)
	return v == "true"
}

// newPrinter builds the printer for cmd from --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	colorMode, _ := rootString(cmd, "color")
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// newLogger logs to stderr at the level chosen by --verbose and --quiet.
func newLogger(cmd *cobra.Command) *logging.Logger {
	level := log.InfoLevel
	switch {
	case rootBool(cmd, "verbose"):
		level = log.DebugLevel
	case rootBool(cmd, "quiet"):
		level = log.ErrorLevel
	}
	return logging.NewWithLevel(cmd.ErrOrStderr(), level)
}

// loadEnv resolves configuration for a command. Flags win over the
// environment, which wins over config.yaml. Errors are printed.
func loadEnv(cmd *cobra.Command) (*cmdEnv, error) {
	printer := newPrinter(cmd)

	cfg, err := config.Load()
	if err != nil {
		err = output.NewUserError(err.Error())
		printer.Error(err)
		return nil, err
	}
	if store, changed := rootString(cmd, "store"); changed {
		cfg.Store = store
	}
	if name, changed := rootString(cmd, "dialect"); changed {
		cfg.Dialect = name
	}
	d, err := dialect.Parse(cfg.Dialect)
	if err != nil {
		err = output.NewUserError(err.Error())
		printer.Error(err)
		return nil, err
	}

	return &cmdEnv{
		cfg:     cfg,
		dialect: d,
		logger:  newLogger(cmd),
		printer: printer,
	}, nil
}

// openStore opens the configured page store. Errors are printed.
func (e *cmdEnv) openStore() (*wiki.Store, error) {
	store, err := wiki.Open(e.cfg.Store)
	if err != nil {
		e.printer.Error(err)
		return nil, err
	}
	if n := store.Stats().ParseErrors; n > 0 {
		e.logger.Warn("skipped unreadable pages", "count", n)
	}
	return store, nil
}
