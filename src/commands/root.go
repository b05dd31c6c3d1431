// Package commands is the thin operational surface over the ingestion
// core: detect, parse, import and rule management.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nicolas-Barriere/pactole-sub001/src/config"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pactole",
		Short: "Bank statement ingestion: parse, deduplicate and tag transactions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}

// readStatementFile loads an upload, enforcing the configured size
// limit the way the web layer would for an HTTP upload.
func readStatementFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > config.Cfg.MaxUploadSizeBytes {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), config.Cfg.MaxUploadSizeBytes)
	}
	return os.ReadFile(path)
}
