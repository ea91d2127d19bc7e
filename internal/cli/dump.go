package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/respectabullz/contracttpl/internal/dump"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [source] [dump]",
	Short: "Write the paragraph-indexed text of a document",
	Long: `Write one "<index>: <text>" line for every non-blank body paragraph of a
document. Indices are document positions, so they are the positions rewrite
rules see.

Both paths are optional and default to dump.source and dump.output from the
configuration file. The dump file is created or overwritten.

Examples:
  contracttpl dump
  contracttpl dump "contacts/Contract of Sale.docx" contacts/contract_dump.txt`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFrom(ctx)

	source := cfg.Dump.Source
	output := cfg.Dump.Output
	if len(args) > 0 {
		source = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	if _, err := dump.Run(ctx, source, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote contract dump to %s from %s\n", output, source)
	return nil
}
