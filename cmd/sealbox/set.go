package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealbox/sealbox/internal/store"
)

var setCmd = &cobra.Command{
	Use:   "set <name> [value]",
	Short: "Store a secret, encrypting it on disk",
	Long: `Set encrypts a value and writes it into the store, overwriting any
previous value. When no value argument is given, the value is read
from stdin so it never appears in shell history.`,
	Example: `  sealbox set api_key sk_live_123 --env prod
  cat cert.pem | sealbox set tls_cert --env prod`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	name := args[0]

	var value []byte
	if len(args) == 2 {
		value = []byte(args[1])
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read value from stdin: %w", err)
		}
		value = data
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	return store.New(logger).Put(cfg, name, value)
}
