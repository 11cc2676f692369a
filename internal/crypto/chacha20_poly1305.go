package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sealbox/sealbox/internal/frame"
	"github.com/sealbox/sealbox/internal/models"
)

// CipherChaCha20 identifies the ChaCha20-Poly1305 provider. It is a
// drop-in alternative to AES-GCM for hosts without AES hardware
// acceleration.
const CipherChaCha20 = "chacha20-poly1305"

const chachaTag = "CHP1"

func init() {
	RegisterCipher(CipherChaCha20, chaCha20Poly1305{})
}

type chaCha20Poly1305 struct{}

func (chaCha20Poly1305) Encrypt(key, plaintext []byte, _ Opts) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create chacha20poly1305: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	return frame.Pack(chachaTag, [][]byte{nonce, ciphertext, tag}), nil
}

func (chaCha20Poly1305) Decrypt(key, blob []byte, _ Opts) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create chacha20poly1305: %w", err)
	}

	nonce, sealed, err := unpackAEAD(chachaTag, blob)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, &models.AuthError{Cipher: CipherChaCha20, Err: err}
	}
	return plaintext, nil
}
