package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealbox/sealbox/internal/crypto"
	"github.com/sealbox/sealbox/internal/models"
)

func TestKDFDeterministic(t *testing.T) {
	for _, name := range []string{crypto.KDFPBKDF2, crypto.KDFScrypt} {
		t.Run(name, func(t *testing.T) {
			kdf, err := crypto.LookupKDF(name)
			require.NoError(t, err)

			first, err := kdf.Derive("hunter2", nil)
			require.NoError(t, err)
			second, err := kdf.Derive("hunter2", nil)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Len(t, first, crypto.KeySize)
		})
	}
}

func TestKDFSensitivity(t *testing.T) {
	kdf, err := crypto.LookupKDF(crypto.KDFPBKDF2)
	require.NoError(t, err)

	base, err := kdf.Derive("hunter2", nil)
	require.NoError(t, err)

	otherPassword, err := kdf.Derive("hunter3", nil)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPassword)

	otherSalt, err := kdf.Derive("hunter2", crypto.Opts{"salt": "pepper"})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSalt)

	otherIterations, err := kdf.Derive("hunter2", crypto.Opts{"iterations": "1000"})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherIterations)
}

func TestKDFNormalizesUnicode(t *testing.T) {
	kdf, err := crypto.LookupKDF(crypto.KDFPBKDF2)
	require.NoError(t, err)

	// "é" precomposed vs "e" + combining acute accent.
	composed, err := kdf.Derive("café", nil)
	require.NoError(t, err)
	decomposed, err := kdf.Derive("café", nil)
	require.NoError(t, err)

	assert.Equal(t, composed, decomposed)
}

func TestKDFInvalidOpts(t *testing.T) {
	tests := []struct {
		name string
		kdf  string
		opts crypto.Opts
	}{
		{"non-numeric iterations", crypto.KDFPBKDF2, crypto.Opts{"iterations": "many"}},
		{"zero iterations", crypto.KDFPBKDF2, crypto.Opts{"iterations": "0"}},
		{"negative n", crypto.KDFScrypt, crypto.Opts{"n": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kdf, err := crypto.LookupKDF(tt.kdf)
			require.NoError(t, err)

			_, err = kdf.Derive("hunter2", tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestLookupUnknownKDF(t *testing.T) {
	_, err := crypto.LookupKDF("bcrypt")
	require.ErrorIs(t, err, models.ErrUnknownKDF)
}
