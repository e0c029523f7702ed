package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vaultpass/vaultpass-cli/internal/cli"
)

// Set with -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := cli.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}

	if err := cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, build); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var withCode interface{ ExitCode() int }
	if errors.As(err, &withCode) {
		return withCode.ExitCode()
	}
	return cli.ExitCodeGeneric
}
