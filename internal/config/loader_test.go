package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealbox/sealbox/internal/config"
	"github.com/sealbox/sealbox/internal/crypto"
)

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	settings, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPrefix, settings.Prefix)
	assert.Equal(t, crypto.DefaultCipher, settings.Cipher)
	assert.Equal(t, crypto.DefaultKDF, settings.KeyDerivation)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sealbox.yaml")
	content := `
priv_path: /var/lib/myapp
env: prod
prefix: ci
cipher: chacha20-poly1305
key_derivation: scrypt
key_derivation_opts:
  salt: pepper
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/myapp", settings.PrivPath)
	assert.Equal(t, "prod", settings.Env)
	assert.Equal(t, "ci", settings.Prefix)
	assert.Equal(t, crypto.CipherChaCha20, settings.Cipher)
	assert.Equal(t, crypto.KDFScrypt, settings.KeyDerivation)
	assert.Equal(t, "pepper", settings.KeyDerivationOpts["salt"])
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sealbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: [unclosed"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
