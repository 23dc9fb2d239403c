package clouds

import (
	"context"
)

type ImageRegistry interface {
	GetImageRef() (string, error)
}

// CloudProvider rolls the registry image out to a managed service and returns its public URL.
type CloudProvider interface {
	DeployServiceFromImage(ctx context.Context, registry ImageRegistry) (string, error)
}
