package service

import (
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type resolvedConfig struct {
	Deployment  deployment.Config `yaml:"deployment"`
	RemoteImage string            `yaml:"remote_image,omitempty"`
}

func newServiceConfigCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	return newResolvingCmd("config", "Print the resolved deployment configuration", func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveDeployment(cmd, locator, args, deployment.Defaults(),
			deployment.WithRequired(),
			deployment.WithMissingEnvFileNotice(nil),
		)
		if err != nil {
			return err
		}

		out := resolvedConfig{Deployment: cfg}

		imageRegistry, err := factories.NewServiceFactory(cfg, locator).NewRegistry()
		if err != nil {
			return fmt.Errorf("getting registry for service %s: %w", cfg.Service, err)
		}
		if out.RemoteImage, err = imageRegistry.GetImageRef(); err != nil {
			slog.WarnContext(cmd.Context(), "remote image cannot be derived", "error", err)
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		return encoder.Close()
	})
}
