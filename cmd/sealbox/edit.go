package main

import (
	"github.com/spf13/cobra"

	"github.com/sealbox/sealbox/internal/editor"
	"github.com/sealbox/sealbox/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a secret's plaintext in $EDITOR",
	Long: `Edit decrypts the secret into a temporary file, opens it in $VISUAL
or $EDITOR, and encrypts the result back into the store. A secret
that does not exist yet starts empty.`,
	Example: `  sealbox edit db_url --env prod`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	return editor.New(store.New(logger), logger).Edit(cfg, args[0])
}
