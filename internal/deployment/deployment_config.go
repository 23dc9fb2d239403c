package deployment

// Config is the resolved set of parameters for one invocation of the external tools.
type Config struct {
	Project              string `mapstructure:"project" yaml:"project"`
	Region               string `mapstructure:"region" yaml:"region"`
	Service              string `mapstructure:"service" yaml:"service"`
	Image                string `mapstructure:"image" yaml:"image"`
	EnvFile              string `mapstructure:"env_file" yaml:"env_file,omitempty"`
	AllowUnauthenticated bool   `mapstructure:"allow_unauthenticated" yaml:"allow_unauthenticated"`
	Memory               string `mapstructure:"memory" yaml:"memory"`
	CPU                  string `mapstructure:"cpu" yaml:"cpu"`
	MinInstances         string `mapstructure:"min_instances" yaml:"min_instances"`
	MaxInstances         string `mapstructure:"max_instances" yaml:"max_instances"`
	Port                 string `mapstructure:"port" yaml:"port"`
}

const (
	DefaultRegion        = "australia-southeast1"
	DefaultService       = "fia-mcp-server"
	DefaultImage         = "fia-mcp-server:latest"
	DefaultMemory        = "512Mi"
	DefaultCPU           = "1"
	DefaultMinInstances  = "0"
	DefaultMaxInstances  = "10"
	DefaultPort          = "8080"
	DefaultDeployEnvFile = ".env.yaml"
	DefaultRunEnvFile    = ".env"
)

// Defaults returns the literal defaults. Project has none and must come from config, env or flags.
func Defaults() Config {
	return Config{
		Region:       DefaultRegion,
		Service:      DefaultService,
		Image:        DefaultImage,
		EnvFile:      DefaultDeployEnvFile,
		Memory:       DefaultMemory,
		CPU:          DefaultCPU,
		MinInstances: DefaultMinInstances,
		MaxInstances: DefaultMaxInstances,
		Port:         DefaultPort,
	}
}

// Merge returns c with every non-empty field of override applied on top.
// AllowUnauthenticated is only ever switched on.
func (c Config) Merge(override Config) Config {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}

	return Config{
		Project:              pick(c.Project, override.Project),
		Region:               pick(c.Region, override.Region),
		Service:              pick(c.Service, override.Service),
		Image:                pick(c.Image, override.Image),
		EnvFile:              pick(c.EnvFile, override.EnvFile),
		AllowUnauthenticated: c.AllowUnauthenticated || override.AllowUnauthenticated,
		Memory:               pick(c.Memory, override.Memory),
		CPU:                  pick(c.CPU, override.CPU),
		MinInstances:         pick(c.MinInstances, override.MinInstances),
		MaxInstances:         pick(c.MaxInstances, override.MaxInstances),
		Port:                 pick(c.Port, override.Port),
	}
}
