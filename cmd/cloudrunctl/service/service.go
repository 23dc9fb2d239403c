package service

import (
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/spf13/cobra"
)

func NewServiceCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Build, run and deploy the service container image",
	}

	serviceCmd.AddCommand(newServiceDeployCmd(locator))
	serviceCmd.AddCommand(newServiceBuildCmd(locator))
	serviceCmd.AddCommand(newServicePushCmd(locator))
	serviceCmd.AddCommand(newServiceRunCmd(locator))
	serviceCmd.AddCommand(newServiceConfigCmd(locator))

	return serviceCmd
}
