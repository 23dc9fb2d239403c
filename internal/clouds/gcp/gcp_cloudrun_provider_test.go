package gcp

import (
	"context"
	"errors"
	"testing"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil/executiltest"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/stretchr/testify/require"
)

type staticRegistry string

func (s staticRegistry) GetImageRef() (string, error) {
	return string(s), nil
}

const (
	remoteImage = "australia-southeast1-docker.pkg.dev/fia-prod/fia-mcp-server/fia-mcp-server:latest"
	serviceURL  = "https://fia-mcp-server-abc123-ts.a.run.app"
)

func deploymentConfig() deployment.Config {
	cfg := deployment.Defaults()
	cfg.Project = "fia-prod"
	return cfg
}

func TestCloudRunProvider(t *testing.T) {
	r := require.New(t)

	t.Run("should configure project, deploy and describe", func(t *testing.T) {
		runner := executiltest.NewRecorder()
		runner.Outputs["gcloud run services describe"] = serviceURL

		cfg := deploymentConfig()
		cfg.EnvFile = ".env.yaml"

		p, err := NewCloudRunProvider(DefaultCloudRunConfig(), cfg, runner)
		r.NoError(err)

		url, err := p.DeployServiceFromImage(context.Background(), staticRegistry(remoteImage))
		r.NoError(err)
		r.Equal(serviceURL, url)

		r.Equal([]string{
			"gcloud config set project fia-prod",
			"gcloud run deploy fia-mcp-server --image " + remoteImage +
				" --project fia-prod --region australia-southeast1 --platform managed" +
				" --memory 512Mi --cpu 1 --min-instances 0 --max-instances 10 --port 8080" +
				" --no-allow-unauthenticated --env-vars-file .env.yaml",
			"gcloud run services describe fia-mcp-server --project fia-prod --region australia-southeast1 --format 'value(status.url)'",
		}, runner.Lines())
	})

	t.Run("should allow unauthenticated access and append extra flags", func(t *testing.T) {
		runner := executiltest.NewRecorder()

		cfg := deploymentConfig()
		cfg.AllowUnauthenticated = true
		cfg.EnvFile = ""

		p, err := NewCloudRunProvider(CloudRunConfig{ExtraFlags: []string{"--timeout=300"}}, cfg, runner)
		r.NoError(err)

		_, err = p.DeployServiceFromImage(context.Background(), staticRegistry(remoteImage))
		r.NoError(err)

		r.Len(runner.Commands, 2)
		deployArgs := runner.Commands[0].Args
		r.Equal([]string{"run", "deploy", "fia-mcp-server"}, deployArgs[:3])
		r.Contains(deployArgs, "--allow-unauthenticated")
		r.NotContains(deployArgs, "--no-allow-unauthenticated")
		r.NotContains(deployArgs, "--env-vars-file")
		r.Equal("--timeout=300", deployArgs[len(deployArgs)-1])
		r.Contains(runner.Lines()[0], "--platform managed")
	})

	t.Run("should pass an explicit env file to gcloud", func(t *testing.T) {
		runner := executiltest.NewRecorder()

		cfg := deploymentConfig()
		cfg.EnvFile = "deploy/prod.env.yaml"

		p, err := NewCloudRunProvider(CloudRunConfig{ConfigureProject: false}, cfg, runner)
		r.NoError(err)

		_, err = p.DeployServiceFromImage(context.Background(), staticRegistry(remoteImage))
		r.NoError(err)

		deployArgs := runner.Commands[0].Args
		r.Equal([]string{"--env-vars-file", "deploy/prod.env.yaml"}, deployArgs[len(deployArgs)-2:])
	})

	t.Run("should stop when the deploy fails", func(t *testing.T) {
		runner := executiltest.NewRecorder()
		deployErr := errors.New("exit status 2")
		runner.Errors["gcloud run deploy"] = deployErr

		p, err := NewCloudRunProvider(DefaultCloudRunConfig(), deploymentConfig(), runner)
		r.NoError(err)

		_, err = p.DeployServiceFromImage(context.Background(), staticRegistry(remoteImage))
		r.ErrorIs(err, deployErr)
		r.Len(runner.Commands, 2)
	})

	t.Run("should require project and region", func(t *testing.T) {
		_, err := NewCloudRunProvider(DefaultCloudRunConfig(), deployment.Defaults(), executiltest.NewRecorder())
		r.ErrorIs(err, lib.BadUserInputError)

		cfg := deploymentConfig()
		cfg.Region = ""
		_, err = NewCloudRunProvider(DefaultCloudRunConfig(), cfg, executiltest.NewRecorder())
		r.ErrorIs(err, lib.BadUserInputError)
	})
}
