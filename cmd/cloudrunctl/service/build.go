package service

import (
	"fmt"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/spf13/cobra"
)

func newServiceBuildCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	return newResolvingCmd("build", "Build the service container image", func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveDeployment(cmd, locator, args, deployment.Defaults(),
			deployment.WithRequired(),
			deployment.WithMissingEnvFileNotice(nil),
		)
		if err != nil {
			return err
		}

		imageSvc, err := factories.NewServiceFactory(cfg, locator).NewImageService()
		if err != nil {
			return fmt.Errorf("getting image for service %s: %w", cfg.Service, err)
		}

		if err := imageSvc.BuildImage(cmd.Context()); err != nil {
			return fmt.Errorf("building image for service %s: %w", cfg.Service, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Built image %s\n", imageSvc.Image())

		return nil
	})
}
