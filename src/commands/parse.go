package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nicolas-Barriere/pactole-sub001/src/models"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Report which bank a statement file comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readStatementFile(args[0])
			if err != nil {
				return err
			}
			parser, err := parsers.DefaultRegistry().Detect(raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), parser.Bank())
			return nil
		},
	}
}

func newParseCommand() *cobra.Command {
	var bank string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement file and print the canonical rows as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readStatementFile(args[0])
			if err != nil {
				return err
			}
			registry := parsers.DefaultRegistry()
			content := parsers.Normalize(raw)

			var parser parsers.BankParser
			if bank != "" {
				parser, err = registry.Get(bank)
			} else {
				parser, err = registry.Detect(content)
			}
			if err != nil {
				return err
			}

			rows, parseErrs := parser.Parse(content)
			if len(parseErrs) > 0 {
				printErrors(parser.Bank(), parseErrs)
				return errors.New("parse failed")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
	cmd.Flags().StringVar(&bank, "bank", "", "skip detection and use this bank's parser")
	return cmd
}

func printErrors(bank string, errs []models.ParseError) {
	fmt.Fprintf(os.Stderr, "%s: %d unusable rows\n", bank, len(errs))
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
	}
}
