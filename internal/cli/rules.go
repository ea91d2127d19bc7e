package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/rewrite"
)

var (
	rulesCatalogue string
	rulesExport    bool
	rulesList      bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rewrite rule catalogue",
	Long: `List the rules build applies, in the order it applies them.

Required rules stop the build when their needle is missing. Optional rules may
match nothing. Normalization scans run over every paragraph.

Use --list to show the built-in catalogues that --catalogue accepts by name.
Use --export to write the catalogue as YAML, edit it, and pass it back with
build --catalogue or build.catalogue in the configuration file.

Examples:
  contracttpl rules
  contracttpl rules --list
  contracttpl rules --export > rules.yaml`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesCatalogue, "catalogue", "", "catalogue name or YAML file (default build.catalogue or dog-sale)")
	rulesCmd.Flags().BoolVar(&rulesExport, "export", false, "write the catalogue as YAML")
	rulesCmd.Flags().BoolVar(&rulesList, "list", false, "list the built-in catalogues")

	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	if rulesList {
		return listCatalogues(cmd)
	}

	cfg := configFrom(cmd.Context())

	rules, err := loadRules(firstNonEmpty(rulesCatalogue, cfg.Build.Catalogue))
	if err != nil {
		return err
	}

	if rulesExport {
		data, err := rewrite.MarshalCatalogue(rules)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rulesTable(rules)).Srender()
	if err != nil {
		return errors.Errorf("failed to render rules: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func rulesTable(rules []rewrite.Rule) pterm.TableData {
	data := pterm.TableData{{"#", "Kind", "Needle", "Required"}}
	for i, r := range rules {
		needle := r.Needle
		if !r.Literal() {
			needle = "(every paragraph)"
		}
		required := "no"
		if r.Required() {
			required = "yes"
		}
		data = append(data, []string{strconv.Itoa(i + 1), string(r.Kind), needle, required})
	}
	return data
}

func listCatalogues(cmd *cobra.Command) error {
	data, err := cataloguesTable()
	if err != nil {
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("failed to render catalogues: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	fmt.Fprintf(cmd.OutOrStdout(), "Registered catalogues: %d\n", rewrite.DefaultRegistry.Count())
	return nil
}

func cataloguesTable() (pterm.TableData, error) {
	data := pterm.TableData{{"Name", "Rules", "Description"}}
	for _, name := range rewrite.Catalogues() {
		c, err := rewrite.Lookup(name)
		if err != nil {
			return nil, err
		}
		data = append(data, []string{c.Name, strconv.Itoa(len(c.Rules())), c.Description})
	}
	return data, nil
}
