package gcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/clouds"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
)

type CloudRunProvider struct {
	config     CloudRunConfig
	deployment deployment.Config
	runner     executil.Runner
}

func NewCloudRunProvider(config CloudRunConfig, deploymentCfg deployment.Config, runner executil.Runner) (*CloudRunProvider, error) {
	if deploymentCfg.Service == "" {
		return nil, fmt.Errorf("%w - Cloud Run service name is required", lib.BadUserInputError)
	}
	if deploymentCfg.Project == "" {
		return nil, fmt.Errorf("%w - Cloud Run project ID is required", lib.BadUserInputError)
	}
	if deploymentCfg.Region == "" {
		return nil, fmt.Errorf("%w - Cloud Run region is required", lib.BadUserInputError)
	}
	if config.Platform == "" {
		config.Platform = DefaultPlatform
	}

	return &CloudRunProvider{
		config:     config,
		deployment: deploymentCfg,
		runner:     runner,
	}, nil
}

func (p *CloudRunProvider) DeployServiceFromImage(ctx context.Context, registry clouds.ImageRegistry) (string, error) {
	l := slog.With("context", "cloud_run_provider", "service", p.deployment.Service)

	imageRef, err := registry.GetImageRef()
	if err != nil {
		return "", fmt.Errorf("getting image reference for service %s: %w", p.deployment.Service, err)
	}
	if imageRef == "" {
		return "", fmt.Errorf("image reference is empty for service %s", p.deployment.Service)
	}

	if p.config.ConfigureProject {
		l.DebugContext(ctx, "setting gcloud project", "project", p.deployment.Project)
		if err := p.runner.Run(ctx, p.configureProjectCommand()); err != nil {
			return "", fmt.Errorf("setting gcloud project %s: %w", p.deployment.Project, err)
		}
	}

	l.InfoContext(ctx, "deploying Cloud Run service",
		"image", imageRef,
		"project", p.deployment.Project,
		"region", p.deployment.Region)

	if err := p.runner.Run(ctx, p.deployCommand(imageRef)); err != nil {
		return "", fmt.Errorf("deploying Cloud Run service %s: %w", p.deployment.Service, err)
	}

	url, err := p.ServiceURL(ctx)
	if err != nil {
		return "", err
	}

	l.InfoContext(ctx, "Cloud Run service deployment completed", "image", imageRef, "uri", url)

	return url, nil
}

// ServiceURL reads the public endpoint of the deployed service.
func (p *CloudRunProvider) ServiceURL(ctx context.Context) (string, error) {
	url, err := p.runner.Output(ctx, executil.Command{
		Name: lib.GcloudExe,
		Args: []string{
			"run", "services", "describe", p.deployment.Service,
			"--project", p.deployment.Project,
			"--region", p.deployment.Region,
			"--format", "value(status.url)",
		},
	})
	if err != nil {
		return "", fmt.Errorf("describing Cloud Run service %s: %w", p.deployment.Service, err)
	}
	return url, nil
}

func (p *CloudRunProvider) configureProjectCommand() executil.Command {
	return executil.Command{
		Name: lib.GcloudExe,
		Args: []string{"config", "set", "project", p.deployment.Project},
	}
}

func (p *CloudRunProvider) deployCommand(imageRef string) executil.Command {
	d := p.deployment

	args := []string{
		"run", "deploy", d.Service,
		"--image", imageRef,
		"--project", d.Project,
		"--region", d.Region,
		"--platform", p.config.Platform,
		"--memory", d.Memory,
		"--cpu", d.CPU,
		"--min-instances", d.MinInstances,
		"--max-instances", d.MaxInstances,
		"--port", d.Port,
	}
	if d.AllowUnauthenticated {
		args = append(args, "--allow-unauthenticated")
	} else {
		args = append(args, "--no-allow-unauthenticated")
	}
	if d.EnvFile != "" {
		args = append(args, "--env-vars-file", d.EnvFile)
	}
	args = append(args, p.config.ExtraFlags...)

	return executil.Command{Name: lib.GcloudExe, Args: args}
}
