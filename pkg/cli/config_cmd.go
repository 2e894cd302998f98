package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/resolvermock/pkg/config"
	"github.com/getmockd/resolvermock/pkg/fixture"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(o))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter configuration file",
		Long: `Write the default configuration to file (default resolver.yaml). The
format follows the extension. Existing files are kept unless --force is
given.

Examples:
  resolverctl config init
  resolverctl config init resolver.json --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "resolver.yaml"
			if len(args) == 1 {
				file = args[0]
			}
			if _, err := os.Stat(file); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", file)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.Default()
			cfg.Fixtures = []config.FixtureSource{{Path: "fixtures/" + fixture.DefaultPattern, Root: "/content"}}
			if err := config.Save(file, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after applying --config and flag overrides.

Examples:
  resolverctl config show --config resolver.yaml
  resolverctl config show --search-path /apps/ --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			format := config.FormatYAML
			if o.jsonOutput {
				format = config.FormatJSON
			}
			data, err := config.Marshal(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
