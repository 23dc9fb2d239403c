package factories

import (
	"context"
	"strings"
	"testing"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/config"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil/executiltest"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders/git"
	"github.com/stretchr/testify/require"
)

const factoryConfigYAML = `
registry:
  repository: "{{ deployment.service }}-images"
cloud_run:
  configure_project: false
  extra_flags:
    - --timeout=300
`

func newLocator(t *testing.T, yaml string) (*SharedServicesLocator, *executiltest.Recorder) {
	t.Helper()

	cfg, err := config.NewConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	runner := executiltest.NewRecorder()
	placeholdersService := placeholders.NewService(git.NewRepositoryInfoService(t.TempDir()))

	return NewSharedServicesLocator(cfg, runner, placeholdersService, lib.Streams{}), runner
}

func factoryDeployment() deployment.Config {
	cfg := deployment.Defaults()
	cfg.Project = "fia-prod"
	return cfg
}

func TestServiceFactory(t *testing.T) {
	r := require.New(t)

	t.Run("should derive the registry repository from placeholders", func(t *testing.T) {
		locator, _ := newLocator(t, factoryConfigYAML)

		reg, err := NewServiceFactory(factoryDeployment(), locator).NewRegistry()
		r.NoError(err)

		ref, err := reg.GetImageRef()
		r.NoError(err)
		r.Equal("australia-southeast1-docker.pkg.dev/fia-prod/fia-mcp-server-images/fia-mcp-server:latest", ref)
	})

	t.Run("should default the repository to the service name", func(t *testing.T) {
		locator, _ := newLocator(t, "deployment: {}\n")

		reg, err := NewServiceFactory(factoryDeployment(), locator).NewRegistry()
		r.NoError(err)

		ref, err := reg.GetImageRef()
		r.NoError(err)
		r.Equal("australia-southeast1-docker.pkg.dev/fia-prod/fia-mcp-server/fia-mcp-server:latest", ref)
	})

	t.Run("should load cloud run settings from config", func(t *testing.T) {
		locator, runner := newLocator(t, factoryConfigYAML)
		runner.Outputs["gcloud run services describe"] = "https://svc.a.run.app"

		factory := NewServiceFactory(factoryDeployment(), locator)
		provider, err := factory.NewCloudProvider()
		r.NoError(err)

		reg, err := factory.NewRegistry()
		r.NoError(err)

		url, err := provider.DeployServiceFromImage(context.Background(), reg)
		r.NoError(err)
		r.Equal("https://svc.a.run.app", url)

		lines := runner.Lines()
		r.Len(lines, 2)
		r.True(strings.HasPrefix(lines[0], "gcloud run deploy fia-mcp-server"))
		r.True(strings.HasSuffix(lines[0], "--timeout=300"))
	})

	t.Run("should build image services with build defaults", func(t *testing.T) {
		locator, runner := newLocator(t, "build:\n  context: "+t.TempDir()+"\n")

		imageSvc, err := NewServiceFactory(factoryDeployment(), locator).NewImageService()
		r.NoError(err)
		r.NoError(imageSvc.BuildImage(context.Background()))

		r.Len(runner.Commands, 1)
		r.Contains(runner.Lines()[0], "--platform linux/amd64")
		r.Contains(runner.Lines()[0], "-f Dockerfile")
	})
}
