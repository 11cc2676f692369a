package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sealbox/sealbox/internal/store"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch a secret's plaintext value",
	Example: `  sealbox get db_url --env prod
  sealbox get api_key --env dev --prefix ci`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	plaintext, err := store.New(logger).Fetch(cfg, name)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"name":  name,
			"env":   cfg.Env,
			"value": string(plaintext),
		})
		return nil
	}

	fmt.Println(string(plaintext))
	return nil
}
