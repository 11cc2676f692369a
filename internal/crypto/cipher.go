// Package crypto provides the pluggable cipher and key-derivation
// providers used by the secret store. Every cipher packs its output
// through the frame codec under a provider-specific tag, so blobs are
// never ambiguous between providers.
package crypto

import (
	"fmt"
	"sync"

	"github.com/sealbox/sealbox/internal/models"
)

const (
	// KeySize is the symmetric key length shared by all providers.
	KeySize = 32 // AES-256 / ChaCha20

	NonceSize = 12 // 96-bit AEAD nonce
	TagSize   = 16 // 128-bit authentication tag
)

// Default provider identifiers.
const (
	DefaultCipher = CipherAESGCM
	DefaultKDF    = KDFPBKDF2
)

// Opts carries provider-specific options, opaque to everything but the
// provider that consumes them.
type Opts map[string]string

// Cipher turns plaintext into an opaque, self-describing blob and back.
// Implementations must round-trip arbitrary plaintext, including empty.
type Cipher interface {
	// Encrypt seals plaintext under key and returns a packed blob.
	Encrypt(key, plaintext []byte, opts Opts) ([]byte, error)

	// Decrypt reverses Encrypt. A blob produced by a different provider
	// fails with a FormatError; a tampered blob fails with an AuthError.
	Decrypt(key, blob []byte, opts Opts) ([]byte, error)
}

var (
	cipherMu sync.RWMutex
	ciphers  = map[string]Cipher{}
)

// RegisterCipher makes a cipher provider selectable by name. It panics
// if the name is already taken.
func RegisterCipher(name string, c Cipher) {
	cipherMu.Lock()
	defer cipherMu.Unlock()

	if _, dup := ciphers[name]; dup {
		panic(fmt.Sprintf("crypto: cipher %q registered twice", name))
	}
	ciphers[name] = c
}

// LookupCipher returns the provider registered under name.
func LookupCipher(name string) (Cipher, error) {
	cipherMu.RLock()
	defer cipherMu.RUnlock()

	c, ok := ciphers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCipher, name)
	}
	return c, nil
}

// ValidateKeySize checks that key is usable by the AEAD providers.
func ValidateKeySize(key []byte) error {
	if len(key) != KeySize {
		return fmt.Errorf("invalid key size: expected %d, got %d", KeySize, len(key))
	}
	return nil
}
