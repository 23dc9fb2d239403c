package lib

import "fmt"

const (
	EnvKeyPrefix = "CLOUDRUNCTL"
)

var (
	LogLevelEnv    = fmt.Sprintf("%s_%s", EnvKeyPrefix, "LOG_LEVEL")
	ConfigPathEnv  = fmt.Sprintf("%s_%s", EnvKeyPrefix, "CONFIG")
	EnvironmentEnv = fmt.Sprintf("%s_%s", EnvKeyPrefix, "ENVIRONMENT")
	DryRunEnv      = fmt.Sprintf("%s_%s", EnvKeyPrefix, "DRY_RUN")
)

const (
	DefaultConfigPath = "./cloudrunctl.yaml"
	DefaultDotEnvPath = ".env"
)

const (
	DockerExe = "docker"
	GcloudExe = "gcloud"
)
