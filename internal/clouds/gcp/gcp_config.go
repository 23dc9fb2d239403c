package gcp

const DefaultPlatform = "managed"

type CloudRunConfig struct {
	Platform string `mapstructure:"platform"`
	// ConfigureProject runs `gcloud config set project` before deploying.
	ConfigureProject bool `mapstructure:"configure_project"`
	// ExtraFlags are appended verbatim to `gcloud run deploy`.
	ExtraFlags []string `mapstructure:"extra_flags"`
}

func DefaultCloudRunConfig() CloudRunConfig {
	return CloudRunConfig{
		Platform:         DefaultPlatform,
		ConfigureProject: true,
	}
}
