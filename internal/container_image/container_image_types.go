package container_image

import "github.com/AnotherFullstackDev/cloudrunctl/internal/buildcontext"

type BuildContextInspector interface {
	ExposedSecrets(root string, patterns []string) ([]buildcontext.Finding, error)
}
