package factories

import (
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/buildcontext"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/clouds"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/clouds/gcp"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/config"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/container_image"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/container_image/registry"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders"
)

// ServiceFactory builds the services of a single invocation from the resolved deployment.
type ServiceFactory struct {
	deployment          deployment.Config
	config              *config.Config
	runner              executil.Runner
	placeholdersService *placeholders.Service
}

func NewServiceFactory(deploymentCfg deployment.Config, executionCtx *SharedServicesLocator) *ServiceFactory {
	return &ServiceFactory{
		deployment:          deploymentCfg,
		config:              executionCtx.Config,
		runner:              executionCtx.Runner,
		placeholdersService: executionCtx.PlaceholdersService,
	}
}

func (f *ServiceFactory) NewRegistry() (registry.Registry, error) {
	registryConfig := registry.Config{}
	if err := f.config.LoadPart(&registryConfig, config.RegistryKey); err != nil {
		return nil, fmt.Errorf("error loading registry config: %w", err)
	}

	deploymentResolvers := placeholders.DeploymentResolvers(f.deployment)

	resolvedHost, err := f.placeholdersService.ResolvePlaceholders(registryConfig.Host, deploymentResolvers)
	if err != nil {
		return nil, fmt.Errorf("resolving registry host placeholder: %w", err)
	}
	registryConfig.Host = resolvedHost

	resolvedRepository, err := f.placeholdersService.ResolvePlaceholders(registryConfig.Repository, deploymentResolvers)
	if err != nil {
		return nil, fmt.Errorf("resolving registry repository placeholder: %w", err)
	}
	registryConfig.Repository = resolvedRepository
	if registryConfig.Repository == "" {
		registryConfig.Repository = f.deployment.Service
	}

	return registry.NewGcpArtifactRegistry(registryConfig, f.deployment.Project, f.deployment.Region, f.deployment.Image), nil
}

func (f *ServiceFactory) NewImageService() (*container_image.Service, error) {
	buildConfig := container_image.DefaultBuildConfig()
	if err := f.config.LoadPart(&buildConfig, config.BuildKey); err != nil {
		return nil, fmt.Errorf("error loading image build config: %w", err)
	}

	containerRegistry, err := f.NewRegistry()
	if err != nil {
		return nil, err
	}

	return container_image.NewService(buildConfig, f.deployment.Image, containerRegistry, f.runner, buildcontext.NewInspector()), nil
}

func (f *ServiceFactory) NewCloudProvider() (clouds.CloudProvider, error) {
	cloudRunConfig := gcp.DefaultCloudRunConfig()
	if err := f.config.LoadPart(&cloudRunConfig, config.CloudRunKey); err != nil {
		return nil, fmt.Errorf("error loading cloud run config: %w", err)
	}

	slog.Debug("loading Cloud Run provider for service", "service", f.deployment.Service, "platform", cloudRunConfig.Platform)

	provider, err := gcp.NewCloudRunProvider(cloudRunConfig, f.deployment, f.runner)
	if err != nil {
		return nil, fmt.Errorf("creating Cloud Run provider: %w", err)
	}

	return provider, nil
}
