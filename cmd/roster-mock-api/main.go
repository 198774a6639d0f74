// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Roster-mock-api serves the student API from memory for development
// and manual testing. Records and, without mock.signing_key, issued
// tokens are lost when the process exits.
//
// Settings come from the mock section of the roster config file, with
// --listen, --prefix, and --token-ttl overriding it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/config"
	"github.com/roster-project/roster/lib/mockapi"
	"github.com/roster-project/roster/lib/process"
	"github.com/roster-project/roster/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		process.Fatal(err)
	}
}

type options struct {
	configPath  string
	listen      string
	prefix      string
	tokenTTL    time.Duration
	showVersion bool
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("roster-mock-api", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to the roster config file (default $ROSTER_CONFIG)")
	flagSet.StringVar(&opts.listen, "listen", "", "listen address (overrides mock.listen)")
	flagSet.StringVar(&opts.prefix, "prefix", "", "collection path (overrides mock.prefix)")
	flagSet.DurationVar(&opts.tokenTTL, "token-ttl", 0, "lifetime of issued tokens (overrides mock.token_ttl)")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}
	if flagSet.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	return opts, nil
}

// loadConfig returns the loaded configuration with flag overrides
// applied.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.listen != "" {
		cfg.Mock.Listen = opts.listen
	}
	if opts.prefix != "" {
		cfg.Mock.Prefix = opts.prefix
	}
	if opts.tokenTTL != 0 {
		cfg.Mock.TokenTTL = opts.tokenTTL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "roster-mock-api %s\n", version.Full())
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(stderr, level)

	server, err := mockapi.New(mockapi.Config{
		Prefix:     cfg.Mock.Prefix,
		TokenTTL:   cfg.Mock.TokenTTL,
		SigningKey: []byte(cfg.Mock.SigningKey),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Mock.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Mock.Listen, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, listener, server, logger)
}

// serve runs handler on listener until ctx is done, then shuts down
// gracefully.
func serve(ctx context.Context, listener net.Listener, server *mockapi.Server, logger *slog.Logger) error {
	httpServer := &http.Server{
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- httpServer.Serve(listener)
	}()

	logger.Info("mock student API running",
		"url", "http://"+listener.Addr().String()+server.Prefix(),
	)

	select {
	case err := <-serveDone:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-serveDone; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
