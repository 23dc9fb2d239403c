package deployment

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
)

const (
	FlagProject              = "--project"
	FlagRegion               = "--region"
	FlagService              = "--service"
	FlagImage                = "--image"
	FlagEnvFile              = "--env-file"
	FlagAllowUnauthenticated = "--allow-unauthenticated"
	FlagMemory               = "--memory"
	FlagCPU                  = "--cpu"
	FlagMinInstances         = "--min-instances"
	FlagMaxInstances         = "--max-instances"
	FlagPort                 = "--port"
)

// Flag describes one recognized command-line option. Exactly one of String or Bool is set:
// String flags consume the following token, Bool flags consume nothing.
type Flag struct {
	Name   string
	Usage  string
	Arg    string
	String func(*Config) *string
	Bool   func(*Config) *bool
}

func (f Flag) TakesValue() bool {
	return f.String != nil
}

var flagTable = []Flag{
	{Name: FlagProject, Arg: "id", Usage: "Google Cloud project ID", String: func(c *Config) *string { return &c.Project }},
	{Name: FlagRegion, Arg: "id", Usage: "Cloud Run region", String: func(c *Config) *string { return &c.Region }},
	{Name: FlagService, Arg: "name", Usage: "Cloud Run service name", String: func(c *Config) *string { return &c.Service }},
	{Name: FlagImage, Arg: "ref", Usage: "Container image reference, placeholders allowed", String: func(c *Config) *string { return &c.Image }},
	{Name: FlagEnvFile, Arg: "path", Usage: "Environment variables file", String: func(c *Config) *string { return &c.EnvFile }},
	{Name: FlagAllowUnauthenticated, Usage: "Allow unauthenticated invocations", Bool: func(c *Config) *bool { return &c.AllowUnauthenticated }},
	{Name: FlagMemory, Arg: "qty", Usage: "Memory limit", String: func(c *Config) *string { return &c.Memory }},
	{Name: FlagCPU, Arg: "count", Usage: "CPU count", String: func(c *Config) *string { return &c.CPU }},
	{Name: FlagMinInstances, Arg: "n", Usage: "Minimum number of instances", String: func(c *Config) *string { return &c.MinInstances }},
	{Name: FlagMaxInstances, Arg: "n", Usage: "Maximum number of instances", String: func(c *Config) *string { return &c.MaxInstances }},
	{Name: FlagPort, Arg: "n", Usage: "Container port", String: func(c *Config) *string { return &c.Port }},
}

var flagsByName = func() map[string]Flag {
	m := make(map[string]Flag, len(flagTable))
	for _, f := range flagTable {
		m[f.Name] = f
	}
	return m
}()

// Flags returns the recognized option table in declaration order.
func Flags() []Flag {
	return append([]Flag(nil), flagTable...)
}

type FileChecker func(path string) (bool, error)

type NoticeFunc func(cfg Config) string

type Resolver struct {
	defaults     Config
	required     []string
	fileExists   FileChecker
	notices      io.Writer
	envFileNotes NoticeFunc
}

type Option func(*Resolver)

// WithRequired replaces the set of flags that must be non-empty after resolution.
func WithRequired(flags ...string) Option {
	return func(r *Resolver) {
		r.required = flags
	}
}

func WithFileChecker(checker FileChecker) Option {
	return func(r *Resolver) {
		r.fileExists = checker
	}
}

func WithNotices(w io.Writer) Option {
	return func(r *Resolver) {
		r.notices = w
	}
}

func WithMissingEnvFileNotice(fn NoticeFunc) Option {
	return func(r *Resolver) {
		r.envFileNotes = fn
	}
}

func NewResolver(defaults Config, opts ...Option) *Resolver {
	r := &Resolver{
		defaults:     defaults,
		required:     []string{FlagProject, FlagRegion},
		fileExists:   lib.IsRegularFile,
		notices:      io.Discard,
		envFileNotes: CloudRunEnvFileNotice,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func CloudRunEnvFileNotice(cfg Config) string {
	return fmt.Sprintf("No env file provided. Environment variables can be set later with: gcloud run services update %s --region %s --update-env-vars KEY=VALUE", cfg.Service, cfg.Region)
}

// Resolve makes a single pass over args. On failure the returned Config is always the zero value.
func (r *Resolver) Resolve(args []string) (Config, error) {
	l := slog.With("context", "deployment_resolver")

	cfg := r.defaults
	envFileExplicit := false

	for i := 0; i < len(args); i++ {
		token := args[i]
		flag, ok := flagsByName[token]
		if !ok {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownOption, token)
		}

		if !flag.TakesValue() {
			*flag.Bool(&cfg) = true
			continue
		}

		if i+1 >= len(args) {
			return Config{}, fmt.Errorf("%w: %s requires a value", ErrMissingRequiredArgument, token)
		}
		i++
		*flag.String(&cfg) = args[i]

		if token == FlagEnvFile {
			envFileExplicit = true
		}
	}

	for _, name := range r.required {
		flag, ok := flagsByName[name]
		if !ok || !flag.TakesValue() {
			continue
		}
		if *flag.String(&cfg) == "" {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredArgument, name)
		}
	}

	if cfg.EnvFile != "" {
		exists, err := r.fileExists(cfg.EnvFile)
		if err != nil {
			return Config{}, fmt.Errorf("checking env file %s: %w", cfg.EnvFile, err)
		}

		switch {
		case !exists && envFileExplicit:
			return Config{}, fmt.Errorf("%w: %s", ErrEnvFileNotFound, cfg.EnvFile)
		case !exists:
			l.Debug("conventional env file not present, continuing without one", "path", cfg.EnvFile)
			cfg.EnvFile = ""
		}
	}

	if cfg.EnvFile == "" && r.envFileNotes != nil {
		fmt.Fprintln(r.notices, r.envFileNotes(cfg))
	}

	l.Debug("deployment configuration resolved", "config", cfg)

	return cfg, nil
}
