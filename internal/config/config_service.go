package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/spf13/viper"
)

const (
	DeploymentKey   = "deployment"
	BuildKey        = "build"
	RegistryKey     = "registry"
	CloudRunKey     = "cloud_run"
	EnvironmentsKey = "environments"
	DryRunKey       = "dry_run"
)

// deploymentEnvBindings maps deployment keys to their CLOUDRUNCTL_* suffixes.
var deploymentEnvBindings = map[string]string{
	"project":               "PROJECT",
	"region":                "REGION",
	"service":               "SERVICE",
	"image":                 "IMAGE",
	"env_file":              "ENV_FILE",
	"allow_unauthenticated": "ALLOW_UNAUTHENTICATED",
	"memory":                "MEMORY",
	"cpu":                   "CPU",
	"min_instances":         "MIN_INSTANCES",
	"max_instances":         "MAX_INSTANCES",
	"port":                  "PORT",
}

type Config struct {
	Environments map[string]map[string]any `mapstructure:"environments"`
	v            *viper.Viper
}

func newConfigFromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(lib.EnvKeyPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(DryRunKey, lib.DryRunEnv); err != nil {
		return nil, fmt.Errorf("binding env for %s: %w", DryRunKey, err)
	}
	for key, env := range deploymentEnvBindings {
		if err := v.BindEnv(DeploymentKey+"."+key, lib.EnvKeyPrefix+"_"+env); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.v = v
	return &cfg, nil
}

func NewConfigFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return newConfigFromViper(v)
}

// NewOptionalConfigFromPath behaves like NewConfigFromPath but returns an empty config when path does not exist.
func NewOptionalConfigFromPath(path string) (*Config, error) {
	exists, err := lib.IsRegularFile(path)
	if err != nil {
		return nil, fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		slog.Debug("config file not found, using defaults and environment only", "path", path)
		return newConfigFromViper(viper.New())
	}

	return NewConfigFromPath(path)
}

func NewConfigFromReader(reader io.Reader) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("reading config from reader: %w", err)
	}

	return newConfigFromViper(v)
}

// WithEnvironment returns a copy of the config with environments.<env> merged over the root keys.
func (c *Config) WithEnvironment(env string) (*Config, error) {
	if env == "" {
		return c, nil
	}

	envPart, ok := c.Environments[env]
	if !ok {
		return nil, fmt.Errorf("%w - environment '%s' not found in config", lib.BadUserInputError, env)
	}

	newV := viper.New()
	if err := newV.MergeConfigMap(c.v.AllSettings()); err != nil {
		return nil, fmt.Errorf("merging config map from global config instance: %w", err)
	}
	if err := newV.MergeConfigMap(envPart); err != nil {
		return nil, fmt.Errorf("merging environment config map: %w", err)
	}

	return newConfigFromViper(newV)
}

// LoadPart decodes the section at partKey into cfg. Missing sections leave cfg untouched,
// so callers pre-fill cfg with their defaults.
func (c *Config) LoadPart(cfg any, partKey string, extraKeys ...string) error {
	key := strings.Join(append([]string{partKey}, extraKeys...), ".")
	if !c.v.IsSet(key) {
		return nil
	}

	if err := c.v.UnmarshalKey(key, cfg); err != nil {
		return fmt.Errorf("unmarshaling %s config: %w", key, err)
	}

	return nil
}

// Deployment layers the config file and CLOUDRUNCTL_* variables over the literal defaults.
// Keys are read one by one so environment bindings apply even without a deployment section.
func (c *Config) Deployment(defaults deployment.Config) deployment.Config {
	str := func(key string) string {
		return c.v.GetString(DeploymentKey + "." + key)
	}

	return defaults.Merge(deployment.Config{
		Project:              str("project"),
		Region:               str("region"),
		Service:              str("service"),
		Image:                str("image"),
		EnvFile:              str("env_file"),
		AllowUnauthenticated: c.v.GetBool(DeploymentKey + ".allow_unauthenticated"),
		Memory:               str("memory"),
		CPU:                  str("cpu"),
		MinInstances:         str("min_instances"),
		MaxInstances:         str("max_instances"),
		Port:                 str("port"),
	})
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}
