package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/builder"
	"github.com/respectabullz/contracttpl/internal/log"
	"github.com/respectabullz/contracttpl/internal/rewrite"
)

var (
	buildSource    string
	buildTarget    string
	buildCatalogue string
	buildDryRun    bool
	buildReport    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the contract template",
	Long: `Apply the rule catalogue to the source contract and save the result as the
template. The source is never overwritten.

A whole-paragraph rule whose needle appears in no paragraph stops the build
before anything is saved. Running build against a template it produced fails
the same way, because the original wording is gone.

Environment:
  CONTRACTTPL_SOURCE   source document
  CONTRACTTPL_TARGET   template document
  CONTRACTTPL_DEBUG    debug logging

Examples:
  contracttpl build
  contracttpl build --report
  contracttpl build --source sale.docx --target template.docx --dry-run`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "source document (default build.source)")
	buildCmd.Flags().StringVarP(&buildTarget, "target", "t", "", "template document (default build.target)")
	buildCmd.Flags().StringVar(&buildCatalogue, "catalogue", "", "catalogue name or YAML file (default dog-sale)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "apply rules in memory without saving")
	buildCmd.Flags().BoolVarP(&buildReport, "report", "r", false, "print one line per rule")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFrom(ctx)

	rules, err := loadRules(firstNonEmpty(buildCatalogue, cfg.Build.Catalogue))
	if err != nil {
		return err
	}

	opts := builder.Options{
		Source: firstNonEmpty(buildSource, cfg.Build.Source),
		Target: firstNonEmpty(buildTarget, cfg.Build.Target),
		Rules:  rules,
		DryRun: buildDryRun,
	}

	report, err := builder.Build(ctx, opts)
	if report != nil && (buildReport || buildDryRun) {
		log.NewReporter(cmd.OutOrStdout()).Report(report)
	}
	if err != nil {
		var matchErr *rewrite.RequiredMatchError
		if errors.As(err, &matchErr) && matchErr.Closest != "" {
			zerolog.Ctx(ctx).Info().Str("needle", matchErr.Needle).Str("closest", matchErr.Closest).Msg("closest paragraph")
		}
		return err
	}

	if opts.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d paragraphs would be rewritten, nothing saved\n", len(report.Rewritten()))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote updated template to %s\n", opts.Target)
	return nil
}
