package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nicolas-Barriere/pactole-sub001/src/config"
	"github.com/Nicolas-Barriere/pactole-sub001/src/database"
	"github.com/Nicolas-Barriere/pactole-sub001/src/parsers"
	"github.com/Nicolas-Barriere/pactole-sub001/src/reconcile"
)

func newImportCommand() *cobra.Command {
	var account string
	var bank string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a statement file and reconcile it into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" {
				return errors.New("--account is required")
			}
			raw, err := readStatementFile(args[0])
			if err != nil {
				return err
			}

			database.InitDB(config.Cfg.DatabasePath)
			store := database.NewStore(database.DB)

			accountID, err := store.EnsureAccount(account, bank)
			if err != nil {
				return err
			}

			importer := reconcile.NewImporter(parsers.DefaultRegistry(), store)
			result, err := importer.ImportFile(accountID, raw, bank)
			if err != nil {
				var failure *parsers.ParseFailure
				if errors.As(err, &failure) {
					printErrors(failure.Bank, failure.Errors)
					return errors.New("import aborted: file has unusable rows")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %s: %d rows, %d added, %d replaced, %d ignored (batch %s)\n",
				args[0], result.Bank, result.Rows, result.Added, result.Replaced, result.Ignored, result.Batch)
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account name to import into")
	cmd.Flags().StringVar(&bank, "bank", "", "skip detection and use this bank's parser")
	return cmd
}
