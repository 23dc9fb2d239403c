package service

import (
	"fmt"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/container_image"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/spf13/cobra"
)

func localEnvFileNotice(cfg deployment.Config) string {
	return fmt.Sprintf("No env file provided. Running %s without additional environment variables.", cfg.Image)
}

func newServiceRunCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	return newResolvingCmd("run", "Run the service container image locally", func(cmd *cobra.Command, args []string) error {
		defaults := deployment.Defaults()
		defaults.EnvFile = deployment.DefaultRunEnvFile

		cfg, err := resolveDeployment(cmd, locator, args, defaults,
			deployment.WithRequired(),
			deployment.WithMissingEnvFileNotice(localEnvFileNotice),
		)
		if err != nil {
			return err
		}

		imageSvc, err := factories.NewServiceFactory(cfg, locator).NewImageService()
		if err != nil {
			return fmt.Errorf("getting image for service %s: %w", cfg.Service, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Starting %s on http://localhost:%s\n", imageSvc.Image(), cfg.Port)

		return imageSvc.RunImage(cmd.Context(), container_image.RunOptions{
			Port:        cfg.Port,
			EnvFile:     cfg.EnvFile,
			Interactive: lib.IsTerminal(locator.Streams.In),
		})
	})
}
