package container_image

type BuildConfig struct {
	Context    string            `mapstructure:"context"`
	Dockerfile string            `mapstructure:"dockerfile"`
	Platform   string            `mapstructure:"platform"`
	Args       map[string]string `mapstructure:"args"`
	// SecretPatterns are doublestar patterns of files that must not reach the build context.
	SecretPatterns []string `mapstructure:"secret_patterns"`
}

// DefaultBuildConfig targets linux/amd64, the only architecture Cloud Run executes.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Context:    ".",
		Dockerfile: "Dockerfile",
		Platform:   "linux/amd64",
		SecretPatterns: []string{
			".env",
			".env.*",
			"**/.env",
			"**/.env.*",
			"**/*.pem",
			"**/*-key.json",
			"**/credentials.json",
		},
	}
}
