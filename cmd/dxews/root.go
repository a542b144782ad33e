/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dirpx.dev/dxews/dxcore/model/version"
	"dirpx.dev/dxews/dxcore/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Each is also a persistent flag and a DXEWS_ variable.
const (
	keyServerVersion = "server-version"
	keyStrict        = "strict"
	keyIndent        = "indent"
	keyVerbose       = "verbose"
)

// app wires the commands to one viper instance and one logger.
type app struct {
	v         *viper.Viper
	root      *cobra.Command
	logger    *slog.Logger
	stderr    io.Writer
	configErr error
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{v: viper.New(), stderr: stderr}
	a.setupConfig()

	a.root = &cobra.Command{
		Use:   "dxews",
		Short: "Validate, render and inspect Inbox rule documents",
		Long: `dxews works with the Inbox rule documents of Exchange Web Services.

Configuration sources, highest precedence first:
  1. Command line flags
  2. Environment variables (DXEWS_SERVER_VERSION, DXEWS_STRICT, ...)
  3. dxews.yaml in the current directory or in ~/.dxews`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.configErr != nil {
				return a.configErr
			}
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			a.logger = newLogger(a.stderr, a.v.GetBool(keyVerbose))
			return nil
		},
	}
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)

	flags := a.root.PersistentFlags()
	flags.String(keyServerVersion, version.Latest.String(), "target server schema version")
	flags.Bool(keyStrict, false, "reject unknown elements instead of skipping them")
	flags.Bool(keyIndent, false, "indent rendered XML")
	flags.BoolP(keyVerbose, "v", false, "log debug output")

	a.root.AddCommand(a.validateCmd(), a.renderCmd(), a.inspectCmd())
	return a
}

func (a *app) setupConfig() {
	a.v.SetConfigName("dxews")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	a.v.AddConfigPath("$HOME/.dxews")

	a.v.SetEnvPrefix("DXEWS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	// A missing config file is fine; a broken one is reported when a command
	// runs.
	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		a.configErr = fmt.Errorf("config: %w", err)
	}
}

// Execute runs the command line.
func (a *app) Execute() error {
	return a.root.Execute()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// wireOptions builds reader and writer options from the configuration.
func (a *app) wireOptions() ([]wire.Option, error) {
	v, err := version.ParseServerVersion(a.v.GetString(keyServerVersion))
	if err != nil {
		return nil, err
	}
	return []wire.Option{
		wire.WithLogger(a.logger),
		wire.WithServerVersion(v),
		wire.WithStrict(a.v.GetBool(keyStrict)),
		wire.WithIndent(a.v.GetBool(keyIndent)),
	}, nil
}
