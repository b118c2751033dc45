// Command shopcart drives the storefront-management screens from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/01moynul/shopcart-admin/internal/config"
	"github.com/01moynul/shopcart-admin/internal/transport"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

var errNotLoggedIn = errors.New("not logged in; run 'shopcart login' first")

func usage() {
	fmt.Fprintln(os.Stderr, "usage: shopcart <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", name, commands[name].summary)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	// 0. --- Configuration & Logging ---
	config.LoadEnvFile()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Wire the App ---
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	// 2. --- Run ---
	runErr := cmd.run(ctx, a, os.Args[2:])
	printToasts(os.Stdout, a.toasts.Drain())
	a.Close()
	if runErr != nil {
		reportError(runErr)
		os.Exit(1)
	}
}

func reportError(err error) {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		fmt.Fprintln(os.Stderr, "invalid input:")
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f, fe[f])
		}
	case errors.Is(err, transport.ErrUnauthorized):
		fmt.Fprintf(os.Stderr, "unauthorized: %s\n", transport.Message(err))
	default:
		fmt.Fprintf(os.Stderr, "error: %s\n", transport.Message(err))
	}
}
