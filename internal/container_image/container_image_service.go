package container_image

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/container_image/registry"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/joho/godotenv"
)

type Service struct {
	config    BuildConfig
	image     string
	registry  registry.Registry
	runner    executil.Runner
	inspector BuildContextInspector
}

func NewService(config BuildConfig, image string, registry registry.Registry, runner executil.Runner, inspector BuildContextInspector) *Service {
	return &Service{
		config:    config,
		image:     image,
		registry:  registry,
		runner:    runner,
		inspector: inspector,
	}
}

func (s *Service) Image() string {
	return s.image
}

func (s *Service) BuildImage(ctx context.Context) error {
	if s.image == "" {
		return fmt.Errorf("%w - no image reference to build", lib.BadUserInputError)
	}

	if s.inspector != nil {
		findings, err := s.inspector.ExposedSecrets(s.config.Context, s.config.SecretPatterns)
		if err != nil {
			return fmt.Errorf("inspecting build context: %w", err)
		}
		for _, f := range findings {
			slog.WarnContext(ctx, "file matching a secret pattern is not excluded by .dockerignore and will be sent to the docker daemon",
				"path", f.Path,
				"pattern", f.Pattern)
		}
	}

	args := []string{"build"}
	if s.config.Platform != "" {
		args = append(args, "--platform", s.config.Platform)
	}
	args = append(args, "-t", s.image)
	if s.config.Dockerfile != "" {
		args = append(args, "-f", s.config.Dockerfile)
	}
	for _, k := range slices.Sorted(maps.Keys(s.config.Args)) {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, s.config.Args[k]))
	}
	args = append(args, s.config.Context)

	slog.InfoContext(ctx, "building image", "image", s.image, "platform", s.config.Platform, "context", s.config.Context)

	if err := s.runner.Run(ctx, executil.Command{Name: lib.DockerExe, Args: args}); err != nil {
		return fmt.Errorf("building image %s: %w", s.image, err)
	}

	return nil
}

// PushImage tags the local image with its registry reference when they differ and pushes it.
func (s *Service) PushImage(ctx context.Context) (string, error) {
	destRef, err := s.registry.GetImageRef()
	if err != nil {
		return "", fmt.Errorf("getting image reference from registry: %w", err)
	}
	if destRef == "" {
		return "", fmt.Errorf("container registry returned empty image reference")
	}

	if destRef != s.image {
		slog.InfoContext(ctx, "tagging image", "source", s.image, "dest", destRef)
		if err := s.runner.Run(ctx, executil.Command{Name: lib.DockerExe, Args: []string{"tag", s.image, destRef}}); err != nil {
			return "", fmt.Errorf("tagging image %s as %s: %w", s.image, destRef, err)
		}
	}

	slog.InfoContext(ctx, "pushing image to remote registry", "dest", destRef)
	if err := s.runner.Run(ctx, executil.Command{Name: lib.DockerExe, Args: []string{"push", destRef}}); err != nil {
		return "", fmt.Errorf("pushing image %s: %w", destRef, err)
	}

	return destRef, nil
}

type RunOptions struct {
	Port        string
	EnvFile     string
	Interactive bool
}

// RunImage starts the local image with docker run. Env file values travel through the
// subprocess environment; only the key names appear in the docker argument list.
func (s *Service) RunImage(ctx context.Context, opts RunOptions) error {
	env := map[string]string{}
	if opts.EnvFile != "" {
		values, err := godotenv.Read(opts.EnvFile)
		if err != nil {
			return fmt.Errorf("%w - reading env file %s: %v", lib.BadUserInputError, opts.EnvFile, err)
		}
		env = values
	}

	args := []string{"run", "--rm"}
	if opts.Interactive {
		args = append(args, "-it")
	}
	if opts.Port != "" {
		args = append(args, "-p", fmt.Sprintf("%s:%s", opts.Port, opts.Port), "-e", "PORT="+opts.Port)
		delete(env, "PORT")
	}
	for _, k := range slices.Sorted(maps.Keys(env)) {
		args = append(args, "-e", k)
	}
	args = append(args, s.image)

	slog.InfoContext(ctx, "running image locally", "image", s.image, "port", opts.Port, "env_keys", len(env))

	if err := s.runner.Run(ctx, executil.Command{Name: lib.DockerExe, Args: args, Env: env}); err != nil {
		return fmt.Errorf("running image %s: %w", s.image, err)
	}

	return nil
}
