package factories

import (
	"github.com/AnotherFullstackDev/cloudrunctl/internal/config"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/executil"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders"
)

type SharedServicesLocator struct {
	Config              *config.Config
	Runner              executil.Runner
	PlaceholdersService *placeholders.Service
	Streams             lib.Streams
}

func NewSharedServicesLocator(config *config.Config, runner executil.Runner, placeholders *placeholders.Service, streams lib.Streams) *SharedServicesLocator {
	return &SharedServicesLocator{
		config,
		runner,
		placeholders,
		streams,
	}
}
