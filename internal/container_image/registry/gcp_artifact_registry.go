package registry

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/google/go-containerregistry/pkg/name"
)

type GcpArtifactRegistry struct {
	config     Config
	project    string
	region     string
	localImage string
}

func NewGcpArtifactRegistry(config Config, project, region, localImage string) Registry {
	return &GcpArtifactRegistry{
		config:     config,
		project:    project,
		region:     region,
		localImage: localImage,
	}
}

// GetImageRef returns the local image unchanged when it already names a registry,
// otherwise <region>-docker.pkg.dev/<project>/<repository>/<name>:<tag>.
func (r *GcpArtifactRegistry) GetImageRef() (string, error) {
	ref, err := name.ParseReference(r.localImage)
	if err != nil {
		return "", fmt.Errorf("%w - invalid image reference %q: %v", lib.BadUserInputError, r.localImage, err)
	}

	if HasRegistryHost(r.localImage) {
		return r.validate(r.localImage)
	}

	if r.project == "" {
		return "", fmt.Errorf("%w - project is required to place %s in Artifact Registry", lib.BadUserInputError, r.localImage)
	}

	host := r.config.Host
	if host == "" {
		host = fmt.Sprintf("%s-docker.pkg.dev", r.region)
	}
	repository := r.config.Repository
	if repository == "" {
		return "", fmt.Errorf("%w - Artifact Registry repository is required for %s", lib.BadUserInputError, r.localImage)
	}

	imageName := path.Base(ref.Context().RepositoryStr())
	remote := fmt.Sprintf("%s/%s/%s/%s%s", host, r.project, repository, imageName, identifierSuffix(ref))

	slog.Debug("derived remote image reference", "local", r.localImage, "remote", remote)

	return r.validate(remote)
}

func identifierSuffix(ref name.Reference) string {
	if _, ok := ref.(name.Digest); ok {
		return "@" + ref.Identifier()
	}
	return ":" + ref.Identifier()
}

func (r *GcpArtifactRegistry) validate(imageID string) (string, error) {
	switch {
	case strings.Contains(imageID, ".pkg.dev/"):
		return validateArtifactRegistryFormat(imageID)
	case strings.HasPrefix(imageID, "gcr.io/") || strings.Contains(imageID, ".gcr.io/"):
		return validateGCRFormat(imageID)
	default:
		if _, err := name.ParseReference(imageID); err != nil {
			return "", fmt.Errorf("%w - invalid image reference %q: %v", lib.BadUserInputError, imageID, err)
		}
		return imageID, nil
	}
}

// validateArtifactRegistryFormat validates format: <region>-docker.pkg.dev/<project>/<repository>/<image>(:<tag>|@<digest>)
func validateArtifactRegistryFormat(imageID string) (string, error) {
	parts := strings.Split(imageID, "/")
	if len(parts) != 4 {
		return "", fmt.Errorf("%w - invalid Artifact Registry image format: %s, expected format: <region>-docker.pkg.dev/<project>/<repository>/<image>:<tag>", lib.BadUserInputError, imageID)
	}

	registryHost := parts[0]
	if !strings.HasSuffix(registryHost, "-docker.pkg.dev") {
		return "", fmt.Errorf("%w - invalid Artifact Registry host: %s, expected format: <region>-docker.pkg.dev", lib.BadUserInputError, registryHost)
	}

	if !hasIdentifier(parts[3]) {
		return "", fmt.Errorf("%w - invalid Artifact Registry image format: %s, missing tag", lib.BadUserInputError, imageID)
	}

	return imageID, nil
}

// validateGCRFormat validates format: gcr.io/<project>/<image>:<tag> or <region>.gcr.io/<project>/<image>:<tag>
func validateGCRFormat(imageID string) (string, error) {
	parts := strings.Split(imageID, "/")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w - invalid GCR image format: %s, expected format: gcr.io/<project>/<image>:<tag>", lib.BadUserInputError, imageID)
	}

	registryHost := parts[0]
	if registryHost != "gcr.io" && !strings.HasSuffix(registryHost, ".gcr.io") {
		return "", fmt.Errorf("%w - invalid GCR host: %s, expected gcr.io or <region>.gcr.io", lib.BadUserInputError, registryHost)
	}

	if !hasIdentifier(parts[len(parts)-1]) {
		return "", fmt.Errorf("%w - invalid GCR image format: %s, missing tag", lib.BadUserInputError, imageID)
	}

	return imageID, nil
}

func hasIdentifier(lastPart string) bool {
	if _, digest, ok := strings.Cut(lastPart, "@"); ok {
		return digest != ""
	}
	_, tag, ok := strings.Cut(lastPart, ":")
	return ok && tag != ""
}
