package service

import (
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/spf13/cobra"
)

func newServiceDeployCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	return newResolvingCmd("deploy", "Deploy the pushed image to Cloud Run", func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveDeployment(cmd, locator, args, deployment.Defaults())
		if err != nil {
			return err
		}

		serviceFactory := factories.NewServiceFactory(cfg, locator)

		serviceProvider, err := serviceFactory.NewCloudProvider()
		if err != nil {
			return fmt.Errorf("getting provider for service %s: %w", cfg.Service, err)
		}

		imageRegistry, err := serviceFactory.NewRegistry()
		if err != nil {
			return fmt.Errorf("getting registry for service %s: %w", cfg.Service, err)
		}

		url, err := serviceProvider.DeployServiceFromImage(cmd.Context(), imageRegistry)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if url == "" {
			slog.WarnContext(cmd.Context(), "Cloud Run did not report a service URL", "service", cfg.Service)
			return nil
		}

		fmt.Fprintf(out, "Service URL: %s\n", url)
		fmt.Fprintf(out, "Health check: curl -fsS %s/health\n", url)

		return nil
	})
}
