// Package info reports where configuration and user records live.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/navigation/pkg/app"
	"tableflip.dev/navigation/pkg/store"
)

type Info struct {
	Settings *store.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	faint := color.New(color.Faint)

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = faint.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return errors.New("failed to create the service")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	source := n.Settings.Source
	if source == "" {
		source = "defaults"
	}
	logFile := n.Settings.LogFile
	if logFile == "" {
		logFile = "-"
	}
	tbl.AddRow(bold.Sprint("Config"), source)
	tbl.AddRow(bold.Sprint("Path"), n.Settings.BasePath())
	tbl.AddRow(bold.Sprint("Mode"), n.Service.Mode.String())
	tbl.AddRow(bold.Sprint("Load delay"), n.Settings.LoadDelay.String())
	tbl.AddRow(bold.Sprint("Log file"), logFile)
	tbl.AddRow(bold.Sprint("Log level"), n.Settings.LogLevel)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	all, err := n.Service.Users(ctx)
	if err != nil {
		return err
	}
	_, _ = bold.Fprintln(out, "Users:")
	for _, u := range all {
		_, _ = fmt.Fprintf(out, "  %s\n", u.Login)
	}
	if len(all) == 0 {
		_, _ = faint.Fprintf(out, "  %s\n", "no users")
	}
	return nil
}
