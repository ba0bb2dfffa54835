// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jcodagnone/geocoder/geocode"
	"github.com/jcodagnone/geocoder/spatial"
	"github.com/jcodagnone/geocoder/utils/httputils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Process exit codes.
const (
	exitOK         = 0
	exitUsage      = 1
	exitTransport  = 2
	exitNotSuccess = 3
)

var Version = "dev"

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var ee *exitError

	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ee):
		return ee.code
	case geocode.IsValidationError(err), errors.Is(err, spatial.ErrInvalidLatLng):
		return exitUsage
	case geocode.IsMalformedResponse(err), geocode.IsIndexError(err):
		return exitTransport
	}

	// transport, status and decoding errors
	return exitTransport
}

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}

		return nil
	}
}

// app holds the state shared by every command of one invocation.
type app struct {
	viper  *viper.Viper
	config *Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:   "geocoder",
		Short: "geocoding web service client",
		Long: `
geocoder resolves addresses into coordinates (and coordinates into addresses)
using the geocoding web service. Requests are signed when a client id and a
signing key are configured.

Settings are read from flags, GEOCODER_* environment variables
(GEOCODER_CLIENT_ID, GEOCODER_SIGNING_KEY, ...) and $HOME/.geocoder.yaml.
`,
		SilenceErrors: true,
		SilenceUsage:  true,

		// cobra reports unknown subcommands through the root's Args.
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.viper)
			if err != nil {
				return usageError(err)
			}

			a.config = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			return nil
		},
	}

	fs := root.PersistentFlags()
	fs.String("config", "", "config file (default $HOME/.geocoder.yaml)")
	fs.String("service-root", geocode.DefaultServiceRoot, "geocoding service endpoint, without the output format")
	fs.String("client-id", "", "premium client id")
	fs.String("signing-key", "", "URL-safe base64 signing key for the client id")
	fs.BoolP("sensor", "s", false, "the request comes from a device with a location sensor")
	fs.Duration("timeout", 10*time.Second, "HTTP request timeout")
	fs.String("user-agent", "geocoder/"+Version, "User-Agent header")
	fs.Bool("trace", false, "dump HTTP requests and responses to stderr")
	fs.Bool("trace-body", false, "include bodies in the HTTP dump")
	fs.BoolP("verbose", "v", false, "debug logging")

	bindFlags(a.viper, fs)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(newLookupCmd(a))
	root.AddCommand(newURLCmd(a))
	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// client builds the geocoding client for the loaded configuration.
func (a *app) client(cmd *cobra.Command) *geocode.Client {
	cfg := a.config

	var trace io.Writer
	if cfg.Trace || cfg.TraceBody {
		trace = cmd.ErrOrStderr()
	}

	opts := []geocode.ClientOption{
		geocode.WithServiceRoot(cfg.ServiceRoot),
		geocode.WithSensor(cfg.Sensor),
		geocode.WithLogger(a.logger),
		geocode.WithHTTPClient(httputils.NewClient(cfg.Timeout, cfg.UserAgent, trace, cfg.TraceBody)),
	}

	if cfg.ClientID != "" || cfg.SigningKey != "" {
		opts = append(opts, geocode.WithCredentials(geocode.Credentials{
			ClientID:   cfg.ClientID,
			SigningKey: cfg.SigningKey,
		}))
	}

	return geocode.NewClient(opts...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the command line and exits with the mapped exit code.
func Execute(version string) {
	Version = version

	root := newRootCmd()

	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "ERROR: %s\n", err)
	}

	os.Exit(exitCode(err))
}
