package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sealbox/sealbox/internal/store"
)

var lsCmd = &cobra.Command{
	Use:     "ls",
	Short:   "List secret names in the namespace",
	Example: `  sealbox ls --env prod`,
	Args:    cobra.NoArgs,
	RunE:    runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	names, err := store.New(logger).List(cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"env":     cfg.Env,
			"prefix":  cfg.Prefix,
			"secrets": names,
		})
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
