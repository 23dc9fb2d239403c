package service

import (
	"fmt"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/factories"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders"
	"github.com/spf13/cobra"
)

// newResolvingCmd returns a command whose tokens are handed to the deployment resolver
// instead of cobra's flag parser.
func newResolvingCmd(use, short string, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                use + " [options]",
		Short:              short,
		Long:               short + "\n\nOptions:\n" + optionsUsage(),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			return run(cmd, args)
		},
	}
}

func optionsUsage() string {
	flags := deployment.Flags()

	names := make([]string, len(flags))
	width := 0
	for i, f := range flags {
		names[i] = f.Name
		if f.TakesValue() {
			names[i] += " <" + f.Arg + ">"
		}
		width = max(width, len(names[i]))
	}

	var b strings.Builder
	for i, f := range flags {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, names[i], f.Usage)
	}
	return b.String()
}

// wantsHelp reports whether -h or --help appears in an option position before any
// unrecognized token. Unrecognized tokens are left to the resolver to reject.
func wantsHelp(args []string) bool {
	takesValue := map[string]bool{}
	for _, f := range deployment.Flags() {
		takesValue[f.Name] = f.TakesValue()
	}

	for i := 0; i < len(args); i++ {
		valueFlag, known := takesValue[args[i]]
		switch {
		case args[i] == "-h" || args[i] == "--help":
			return true
		case !known:
			return false
		case valueFlag:
			i++
		}
	}
	return false
}

// resolveDeployment layers the command-line tokens over the config file, CLOUDRUNCTL_*
// variables and the given literal defaults, then expands image placeholders.
func resolveDeployment(cmd *cobra.Command, locator *factories.SharedServicesLocator, args []string, defaults deployment.Config, opts ...deployment.Option) (deployment.Config, error) {
	base := locator.Config.Deployment(defaults)

	opts = append([]deployment.Option{deployment.WithNotices(cmd.OutOrStdout())}, opts...)
	cfg, err := deployment.NewResolver(base, opts...).Resolve(args)
	if err != nil {
		return deployment.Config{}, err
	}

	image, err := locator.PlaceholdersService.ResolvePlaceholders(cfg.Image, placeholders.DeploymentResolvers(cfg))
	if err != nil {
		return deployment.Config{}, fmt.Errorf("resolving image placeholders: %w", err)
	}
	cfg.Image = image

	return cfg, nil
}
