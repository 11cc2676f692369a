package crypto

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/sealbox/sealbox/internal/models"
)

// KDF provider identifiers.
const (
	KDFPBKDF2 = "pbkdf2"
	KDFScrypt = "scrypt"
)

const (
	// PBKDF2 defaults.
	DefaultIterations = 100_000

	// Scrypt defaults.
	ScryptN = 32768 // CPU/memory cost parameter
	ScryptR = 8     // block size parameter
	ScryptP = 1     // parallelization parameter
)

// defaultSalt keeps derivation deterministic when the caller supplies
// no salt of their own. Configurations that share a password across
// machines must either rely on this or pin the same "salt" option
// everywhere.
const defaultSalt = "sealbox.kdf.v1"

// KDF derives a fixed-length symmetric key from a human password. For
// a fixed (password, opts) pair the result is deterministic.
type KDF interface {
	Derive(password string, opts Opts) ([]byte, error)
}

var (
	kdfMu sync.RWMutex
	kdfs  = map[string]KDF{}
)

// RegisterKDF makes a derivation provider selectable by name. It
// panics if the name is already taken.
func RegisterKDF(name string, k KDF) {
	kdfMu.Lock()
	defer kdfMu.Unlock()

	if _, dup := kdfs[name]; dup {
		panic(fmt.Sprintf("crypto: kdf %q registered twice", name))
	}
	kdfs[name] = k
}

// LookupKDF returns the provider registered under name.
func LookupKDF(name string) (KDF, error) {
	kdfMu.RLock()
	defer kdfMu.RUnlock()

	k, ok := kdfs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKDF, name)
	}
	return k, nil
}

func init() {
	RegisterKDF(KDFPBKDF2, pbkdf2KDF{})
	RegisterKDF(KDFScrypt, scryptKDF{})
}

// normalizePassword applies NFKC so that visually identical passwords
// typed on different platforms derive the same key.
func normalizePassword(password string) []byte {
	return []byte(norm.NFKC.String(password))
}

func saltOpt(opts Opts) []byte {
	if s, ok := opts["salt"]; ok {
		return []byte(s)
	}
	return []byte(defaultSalt)
}

func intOpt(opts Opts, key string, def int) (int, error) {
	s, ok := opts[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s option: %q", key, s)
	}
	return n, nil
}

// pbkdf2KDF is the default provider: PBKDF2-HMAC-SHA256. Options:
// "salt", "iterations".
type pbkdf2KDF struct{}

func (pbkdf2KDF) Derive(password string, opts Opts) ([]byte, error) {
	iterations, err := intOpt(opts, "iterations", DefaultIterations)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(normalizePassword(password), saltOpt(opts), iterations, KeySize, sha256.New), nil
}

// scryptKDF derives via scrypt. Options: "salt", "n", "r", "p".
type scryptKDF struct{}

func (scryptKDF) Derive(password string, opts Opts) ([]byte, error) {
	n, err := intOpt(opts, "n", ScryptN)
	if err != nil {
		return nil, err
	}
	r, err := intOpt(opts, "r", ScryptR)
	if err != nil {
		return nil, err
	}
	p, err := intOpt(opts, "p", ScryptP)
	if err != nil {
		return nil, err
	}

	key, err := scrypt.Key(normalizePassword(password), saltOpt(opts), n, r, p, KeySize)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation: %w", err)
	}
	return key, nil
}
