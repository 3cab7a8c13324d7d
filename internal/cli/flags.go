package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/morozRed/mdtree/internal/config"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, defaultValue bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return defaultValue, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// addConfigFlags registers the flags that config.Load binds by key.
func addConfigFlags(flags *pflag.FlagSet) {
	defaults := config.Default()
	flags.String(config.KeyAnnotations, "", "Annotation file to use instead of discovery")
	flags.String(config.KeyListingCommand, defaults.ListingCommand, "Listing binary invoked for each tree block")
	flags.IntP(config.KeyJobs, "j", defaults.Jobs, "Documents processed in parallel")
	flags.StringSlice(config.KeyIgnore, nil, "Extra ignore rules for document discovery")
	flags.String(config.KeyLogLevel, defaults.LogLevel, "Log level: trace|debug|info|warn|error")
	flags.String(config.KeyLogFormat, defaults.LogFormat, "Log format: console|json|pretty")
}
