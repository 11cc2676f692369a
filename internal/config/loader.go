package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sealbox/sealbox/internal/crypto"
)

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	File   string `mapstructure:"file"`   // log file path (empty = stderr)
}

// Settings are the file/environment-level defaults the CLI feeds into
// Resolve. The library itself never reads them; Resolve stays pure over
// explicit options.
type Settings struct {
	PrivPath          string      `mapstructure:"priv_path"`
	Env               string      `mapstructure:"env"`
	Prefix            string      `mapstructure:"prefix"`
	Cipher            string      `mapstructure:"cipher"`
	KeyDerivation     string      `mapstructure:"key_derivation"`
	KeyDerivationOpts crypto.Opts `mapstructure:"key_derivation_opts"`
	CipherOpts        crypto.Opts `mapstructure:"cipher_opts"`
	Log               LogConfig   `mapstructure:"log"`
}

// Load reads settings from a sealbox.yaml config file and SEALBOX_*
// environment variables. A missing config file is not an error; the
// defaults stand.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName("sealbox")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sealbox"))
		}
	}

	v.SetEnvPrefix("SEALBOX")
	v.AutomaticEnv()

	v.SetDefault("prefix", DefaultPrefix)
	v.SetDefault("cipher", crypto.DefaultCipher)
	v.SetDefault("key_derivation", crypto.DefaultKDF)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &settings, nil
}
