package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// newRootCmd builds the command tree. Each call returns independent flag
// state, so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "resolverctl",
		Short: "resolverctl inspects in-memory resource trees",
		Long: `resolverctl loads JSON and YAML fixtures into an in-memory resource tree
and lets you browse, resolve and query it the way application code would.

Configuration can be provided via flags or a configuration file given with
--config. Flags override values from the file.`,
		// No Run function here means 'resolverctl' with no args prints help.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	flags.StringArrayVarP(&o.fixtures, "fixture", "f", nil, "Fixture file, directory or glob pattern (repeatable)")
	flags.StringVar(&o.root, "root", "/", "Resource the -f fixtures are loaded under")
	flags.StringSliceVar(&o.searchPaths, "search-path", nil, "Search paths for relative resource paths (default /apps/,/libs/)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVar(&o.jsonOutput, "json", false, "Output command results in JSON format")

	rootCmd.AddCommand(
		newTreeCmd(o),
		newGetCmd(o),
		newResolveCmd(o),
		newLsCmd(o),
		newFindCmd(o),
		newQueryCmd(o),
		newTypesCmd(o),
		newConfigCmd(o),
		newVersionCmd(o),
	)
	return rootCmd
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// Execute runs the CLI and exits on failure. This is called by main.main().
func Execute() {
	if code := Main(); code != 0 {
		os.Exit(code)
	}
}
