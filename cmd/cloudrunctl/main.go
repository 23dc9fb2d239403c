package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnotherFullstackDev/cloudrunctl/cmd/cloudrunctl/service"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/config"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders/git"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cloudrunctl",
		Short:         "Cloudrunctl builds, runs and deploys a container image to Google Cloud Run.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetIn(locator.Streams.In)
	rootCmd.SetOut(locator.Streams.Out)
	rootCmd.SetErr(locator.Streams.Err)

	rootCmd.AddCommand(
		service.NewServiceCmd(locator),
	)

	return rootCmd
}

func run(ctx context.Context, args []string, streams lib.Streams) error {
	if err := godotenv.Load(lib.DefaultDotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", lib.DefaultDotEnvPath, err)
	}

	lib.SetupLogger(streams.Err)

	configPath := os.Getenv(lib.ConfigPathEnv)
	if configPath == "" {
		configPath = lib.DefaultConfigPath
	}

	cfg, err := config.NewOptionalConfigFromPath(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	cfg, err = cfg.WithEnvironment(os.Getenv(lib.EnvironmentEnv))
	if err != nil {
		return fmt.Errorf("loading environment specific config: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	runner := executil.NewCLIRunner(streams, cfg.GetBool(config.DryRunKey))
	placeholdersService := placeholders.NewService(git.NewRepositoryInfoService(cwd))
	locator := factories.NewSharedServicesLocator(cfg, runner, placeholdersService, streams)

	rootCmd := newRootCmd(locator)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], lib.StdStreams())
	stop()

	if err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(executil.ExitCode(err, 1))
	}
}
