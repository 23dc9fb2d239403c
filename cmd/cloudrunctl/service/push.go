package service

import (
	"fmt"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/spf13/cobra"
)

func newServicePushCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	return newResolvingCmd("push", "Tag the local image for Artifact Registry and push it", func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveDeployment(cmd, locator, args, deployment.Defaults(),
			deployment.WithMissingEnvFileNotice(nil),
		)
		if err != nil {
			return err
		}

		imageSvc, err := factories.NewServiceFactory(cfg, locator).NewImageService()
		if err != nil {
			return fmt.Errorf("getting image for service %s: %w", cfg.Service, err)
		}

		ref, err := imageSvc.PushImage(cmd.Context())
		if err != nil {
			return fmt.Errorf("pushing image for service %s: %w", cfg.Service, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Pushed image %s\n", ref)

		return nil
	})
}
