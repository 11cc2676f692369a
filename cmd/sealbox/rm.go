package main

import (
	"github.com/spf13/cobra"

	"github.com/sealbox/sealbox/internal/store"
)

var rmCmd = &cobra.Command{
	Use:     "rm <name>",
	Short:   "Delete a secret",
	Example: `  sealbox rm api_key --env dev`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	return store.New(logger).Delete(cfg, args[0])
}
