package crypto_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealbox/sealbox/internal/crypto"
	"github.com/sealbox/sealbox/internal/models"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, crypto.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestCipherRoundTrip(t *testing.T) {
	providers := []string{crypto.CipherAESGCM, crypto.CipherChaCha20, crypto.CipherPlaintext}
	plaintexts := [][]byte{
		[]byte("hello"),
		{},
		[]byte("sk_live_123"),
		bytes.Repeat([]byte{0x00, 0xff}, 4096),
	}

	for _, name := range providers {
		t.Run(name, func(t *testing.T) {
			cipher, err := crypto.LookupCipher(name)
			require.NoError(t, err)
			key := testKey(t)

			for _, plaintext := range plaintexts {
				blob, err := cipher.Encrypt(key, plaintext, nil)
				require.NoError(t, err)

				got, err := cipher.Decrypt(key, blob, nil)
				require.NoError(t, err)
				assert.Equal(t, plaintext, got)
			}
		})
	}
}

func TestAEADTamperDetection(t *testing.T) {
	for _, name := range []string{crypto.CipherAESGCM, crypto.CipherChaCha20} {
		t.Run(name, func(t *testing.T) {
			cipher, err := crypto.LookupCipher(name)
			require.NoError(t, err)
			key := testKey(t)

			blob, err := cipher.Encrypt(key, []byte("attack at dawn"), nil)
			require.NoError(t, err)

			// Flip every bit in the blob; each flip must fail and never
			// yield altered plaintext.
			for i := 0; i < len(blob); i++ {
				for bit := 0; bit < 8; bit++ {
					tampered := make([]byte, len(blob))
					copy(tampered, blob)
					tampered[i] ^= 1 << bit

					got, err := cipher.Decrypt(key, tampered, nil)
					require.Error(t, err, "byte %d bit %d", i, bit)
					assert.Nil(t, got)
				}
			}
		})
	}
}

func TestAEADWrongKey(t *testing.T) {
	for _, name := range []string{crypto.CipherAESGCM, crypto.CipherChaCha20} {
		t.Run(name, func(t *testing.T) {
			cipher, err := crypto.LookupCipher(name)
			require.NoError(t, err)

			blob, err := cipher.Encrypt(testKey(t), []byte("payload"), nil)
			require.NoError(t, err)

			_, err = cipher.Decrypt(testKey(t), blob, nil)
			var authErr *models.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, name, authErr.Cipher)
		})
	}
}

func TestDecryptForeignBlobIsFormatError(t *testing.T) {
	key := testKey(t)

	aesGCM, err := crypto.LookupCipher(crypto.CipherAESGCM)
	require.NoError(t, err)
	chacha, err := crypto.LookupCipher(crypto.CipherChaCha20)
	require.NoError(t, err)

	blob, err := aesGCM.Encrypt(key, []byte("hello"), nil)
	require.NoError(t, err)

	_, err = chacha.Decrypt(key, blob, nil)
	var formatErr *models.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestAEADInvalidKeySize(t *testing.T) {
	cipher, err := crypto.LookupCipher(crypto.CipherAESGCM)
	require.NoError(t, err)

	_, err = cipher.Encrypt([]byte("short"), []byte("data"), nil)
	assert.Error(t, err)
}

func TestPlaintextBlobIsReadable(t *testing.T) {
	cipher, err := crypto.LookupCipher(crypto.CipherPlaintext)
	require.NoError(t, err)

	blob, err := cipher.Encrypt(nil, []byte("hello"), nil)
	require.NoError(t, err)

	// Documented insecurity: the value is visible in the blob.
	assert.Contains(t, string(blob), "hello")

	got, err := cipher.Decrypt(nil, blob, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestLookupUnknownCipher(t *testing.T) {
	_, err := crypto.LookupCipher("rot13")
	require.ErrorIs(t, err, models.ErrUnknownCipher)
}

func TestEncryptProducesFreshNonce(t *testing.T) {
	cipher, err := crypto.LookupCipher(crypto.CipherAESGCM)
	require.NoError(t, err)
	key := testKey(t)

	first, err := cipher.Encrypt(key, []byte("same plaintext"), nil)
	require.NoError(t, err)
	second, err := cipher.Encrypt(key, []byte("same plaintext"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
