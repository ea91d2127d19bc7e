// Package cli implements the contracttpl command line.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/config"
	"github.com/respectabullz/contracttpl/internal/log"
	"github.com/respectabullz/contracttpl/internal/rewrite"
)

var version = "dev"

var (
	configFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "contracttpl",
	Short: "Turn a filled-in dog-sale contract into a document template",
	Long: `contracttpl rewrites known paragraphs of a finished dog-sale contract into
placeholders ({buyerName}) and conditional blocks ({#isPet}...{/isPet}) so the
document can be rendered again for the next sale.

Commands:
  build   apply the rule catalogue and save the template
  dump    write the paragraph-indexed text of a document
  rules   list or export the rule catalogue
  config  manage the configuration file`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "contracttpl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default ~/.contracttpl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

type configKey struct{}

// setup loads the configuration, applies environment overrides and puts the
// configuration and a logger into the command context.
func setup(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.Load()
	if err != nil {
		return errors.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()

	ctx, err := withLogger(cmd, cfg.Log.Level)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
	return nil
}

// setupLogger only installs the logger. Config commands use it so a broken
// configuration file can still be inspected and replaced.
func setupLogger(cmd *cobra.Command, args []string) error {
	level := ""
	if config.GetEnvBool(config.EnvDebug) {
		level = zerolog.DebugLevel.String()
	}
	ctx, err := withLogger(cmd, level)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

func withLogger(cmd *cobra.Command, levelName string) (context.Context, error) {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if debug {
		level = zerolog.DebugLevel
	}
	logger := log.New(cmd.ErrOrStderr(), level)
	return logger.WithContext(cmd.Context()), nil
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg := config.DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

func newLoader() (*config.Loader, error) {
	if configFile != "" {
		return config.NewLoaderWithPath(configFile), nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return nil, errors.Errorf("failed to initialize config loader: %w", err)
	}
	return loader, nil
}

// loadRules resolves a registered catalogue name or a YAML catalogue path.
func loadRules(ref string) ([]rewrite.Rule, error) {
	return rewrite.Resolve(ref)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
