package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sealbox/sealbox/internal/config"
	"github.com/sealbox/sealbox/internal/events"
)

var rootCmd = &cobra.Command{
	Use:   "sealbox",
	Short: "Manage encrypted named secrets",
	Long: `Sealbox stores named secrets (API keys, database URLs) encrypted on
disk under a per-environment, per-prefix namespace. Values are
encrypted with a key derived from a password or supplied directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		logger, err = events.NewLogger(&settings.Log)
		return err
	},
}

var (
	settings *config.Settings
	logger   *events.Logger

	flagConfig   string
	flagApp      string
	flagEnv      string
	flagPrefix   string
	flagPrivPath string
	flagCipher   string
	flagKDF      string
	flagKey      string
	flagPassword string
	jsonOutput   bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file path")
	pf.StringVar(&flagApp, "app", "sealbox", "Application identifier")
	pf.StringVarP(&flagEnv, "env", "e", "", "Environment name (default from config or SEALBOX_ENV)")
	pf.StringVar(&flagPrefix, "prefix", "", "Store namespace prefix")
	pf.StringVar(&flagPrivPath, "priv-path", "", "Private data directory")
	pf.StringVar(&flagCipher, "cipher", "", "Cipher provider")
	pf.StringVar(&flagKDF, "key-derivation", "", "Key derivation provider")
	pf.StringVarP(&flagKey, "key", "k", "", "Raw key, base64 (default from SEALBOX_KEY)")
	pf.StringVarP(&flagPassword, "password", "p", "", "Password (will prompt if no key is available)")
	pf.BoolVar(&jsonOutput, "json", false, "JSON output")
}

// resolveConfig merges flags over file settings and resolves the final
// configuration, prompting for a password when no key source is given.
func resolveConfig() (*config.Config, error) {
	opts := []config.Option{
		config.WithKeyDerivationOpts(settings.KeyDerivationOpts),
		config.WithCipherOpts(settings.CipherOpts),
	}

	if v := pick(flagEnv, settings.Env); v != "" || flagEnv != "" {
		opts = append(opts, config.WithEnv(v))
	}
	if v := pick(flagPrefix, settings.Prefix); v != "" {
		opts = append(opts, config.WithPrefix(v))
	}
	if v := pick(flagPrivPath, settings.PrivPath); v != "" {
		opts = append(opts, config.WithPrivPath(v))
	}
	if v := pick(flagCipher, settings.Cipher); v != "" {
		opts = append(opts, config.WithCipher(v))
	}
	if v := pick(flagKDF, settings.KeyDerivation); v != "" {
		opts = append(opts, config.WithKeyDerivation(v))
	}

	rawKey := flagKey
	if rawKey == "" {
		rawKey = os.Getenv("SEALBOX_KEY")
	}
	switch {
	case rawKey != "":
		key, err := base64.StdEncoding.DecodeString(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		opts = append(opts, config.WithKey(key))
	case flagPassword != "":
		opts = append(opts, config.WithPassword(flagPassword))
	default:
		password, err := promptPassword("Password: ")
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		opts = append(opts, config.WithPassword(password))
	}

	return config.Resolve(flagApp, opts...)
}

func pick(flag, setting string) string {
	if flag != "" {
		return flag
	}
	return setting
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printError("marshal JSON: %v", err)
		return
	}
	fmt.Println(string(data))
}
