package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/sealbox/sealbox/internal/frame"
	"github.com/sealbox/sealbox/internal/models"
)

// CipherAESGCM identifies the default AES-256-GCM provider.
const CipherAESGCM = "aes-gcm"

const aesGCMTag = "AGCM1"

func init() {
	RegisterCipher(CipherAESGCM, aesGCM{})
}

// aesGCM is the production provider: AES-256-GCM with a fresh random
// nonce per encryption. Blobs pack [nonce, ciphertext, tag] under the
// AGCM1 tag.
type aesGCM struct{}

func (aesGCM) Encrypt(key, plaintext []byte, _ Opts) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	return frame.Pack(aesGCMTag, [][]byte{nonce, ciphertext, tag}), nil
}

func (aesGCM) Decrypt(key, blob []byte, _ Opts) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, sealed, err := unpackAEAD(aesGCMTag, blob)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, &models.AuthError{Cipher: CipherAESGCM, Err: err}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if err := ValidateKeySize(key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return aead, nil
}

// unpackAEAD splits an AEAD blob into its nonce and the sealed
// ciphertext+tag that Open expects. Both AEAD providers share the same
// three-part layout.
func unpackAEAD(tag string, blob []byte) (nonce, sealed []byte, err error) {
	parts, err := frame.Unpack(tag, blob)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) != 3 {
		return nil, nil, &models.FormatError{Tag: tag, Reason: fmt.Sprintf("expected 3 parts, got %d", len(parts))}
	}

	nonce, ciphertext, authTag := parts[0], parts[1], parts[2]
	if len(nonce) != NonceSize {
		return nil, nil, &models.FormatError{Tag: tag, Reason: "bad nonce length"}
	}
	if len(authTag) != TagSize {
		return nil, nil, &models.FormatError{Tag: tag, Reason: "bad auth tag length"}
	}

	sealed = make([]byte, 0, len(ciphertext)+len(authTag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, authTag...)
	return nonce, sealed, nil
}
