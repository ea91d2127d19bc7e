package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/respectabullz/contracttpl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage the contracttpl configuration.

Config file location: ~/.contracttpl/config.yaml (override with --config).
Files ending in .hcl are read and written as HCL.

Subcommands:
  show    show the current configuration
  init    create a default configuration file
  set     change a configuration value
  path    print the configuration file path`,
	PersistentPreRunE: setupLogger,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Long: `Show the configuration as stored in the file, followed by the environment
variables that override it. Defaults are shown when no file exists.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file.

Fails if the file already exists. Use --force to overwrite it.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value.

Supported keys:
  build.source     source contract
  build.target     template written by build
  build.catalogue  catalogue name or YAML file (empty for dog-sale)
  dump.source      document read by dump
  dump.output      dump file written by dump
  log.level        trace, debug, info, warn, error

Examples:
  contracttpl config set build.target "out/Contract Template.docx"
  contracttpl config set log.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing configuration file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return errors.Errorf("failed to load config: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: (defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Errorf("failed to print config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "Environment:")
	env := pterm.TableData{}
	for _, ev := range []struct {
		key  string
		desc string
	}{
		{config.EnvSource, "source document (build and dump)"},
		{config.EnvTarget, "template document"},
		{config.EnvDebug, "debug logging"},
	} {
		status := "(unset)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		env = append(env, []string{"  " + ev.key, ev.desc, status})
	}

	table, err := pterm.DefaultTable.WithData(env).WithSeparator("  ").Srender()
	if err != nil {
		return errors.Errorf("failed to print environment: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	if configForce {
		err = loader.Save(config.DefaultConfig())
	} else {
		err = loader.Init()
	}
	if err != nil {
		return errors.Errorf("failed to create config file: %w\nuse --force to overwrite it", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return errors.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Set(strings.ToLower(key), value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return errors.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}
