package registry

import "strings"

type Config struct {
	// Host overrides the Artifact Registry host, default "<region>-docker.pkg.dev".
	Host string `mapstructure:"host"`
	// Repository is the Artifact Registry repository, default the Cloud Run service name.
	Repository string `mapstructure:"repository"`
}

// Registry maps the locally built image onto the reference pushed and deployed.
type Registry interface {
	GetImageRef() (string, error)
}

// HasRegistryHost applies the docker CLI rule: the first path component names a registry
// when it contains a '.' or ':' or is "localhost".
func HasRegistryHost(ref string) bool {
	first, _, found := strings.Cut(ref, "/")
	if !found {
		return false
	}
	return strings.ContainsAny(first, ".:") || first == "localhost"
}
