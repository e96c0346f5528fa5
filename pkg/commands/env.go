package commands

import (
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/logging"
	"tableflip.dev/navigation/pkg/store"
)

// env is what a command needs to run: resolved settings, the user directory
// and the service built over both.
type env struct {
	settings *store.Settings
	service  *app.Service
	logger   *zap.Logger
}

// loadEnv resolves configuration and the global flags. Without a log file,
// the terminal UI logs nowhere and other commands log to stderr: warnings
// only, or everything with --verbose.
func loadEnv(tui bool) (*env, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if m := strings.TrimSpace(global.Mode); m != "" {
		settings.Mode = m
	}

	logCfg := logging.Config{Path: settings.LogFile, Level: settings.LogLevel}
	if logCfg.Path == "" && !tui {
		logCfg.Path = logging.Stderr
		logCfg.Level = "warn"
		if global.Verbose {
			logCfg.Level = "debug"
		}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	p, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	svc, err := app.NewService(settings, p, logger)
	if err != nil {
		return nil, err
	}
	return &env{settings: settings, service: svc, logger: logger}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}
