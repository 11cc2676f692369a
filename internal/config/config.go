// Package config resolves caller options into the immutable
// configuration the secret store operates on.
package config

import (
	"os"
	"path/filepath"

	"github.com/sealbox/sealbox/internal/crypto"
	"github.com/sealbox/sealbox/internal/models"
)

// DefaultPrefix is the namespace segment used when none is given.
const DefaultPrefix = "secrets"

// Config is an immutable, fully-resolved configuration. A usable
// Config always carries a non-empty key; Resolve fails rather than
// producing one without.
type Config struct {
	// App identifies the application owning the secrets.
	App string

	// Key is the symmetric key handed to the cipher provider.
	Key []byte

	// Env is the logical environment name ("prod", "dev", ...), used
	// as a path segment. May be empty when unknown.
	Env string

	// Cipher selects the provider used for encrypt/decrypt.
	Cipher string

	// CipherOpts is opaque to the resolver; the provider interprets it.
	CipherOpts crypto.Opts

	// PrivPath is the root directory under which this application's
	// secrets live.
	PrivPath string

	// Prefix distinguishes independent secret stores sharing one
	// PrivPath.
	Prefix string
}

// PrivPathResolver supplies the default private-data directory for an
// application. EnvResolver supplies the default environment name, empty
// when unknown. Both are external collaborators; tests swap them out.
type (
	PrivPathResolver func(app string) string
	EnvResolver      func() string
)

// DefaultPrivPath places data under the user config directory, falling
// back to a local dotdir when that cannot be determined.
func DefaultPrivPath(app string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, app)
	}
	return "." + app
}

// DefaultEnv reads the logical environment from SEALBOX_ENV.
func DefaultEnv() string {
	return os.Getenv("SEALBOX_ENV")
}

type options struct {
	key           []byte
	password      string
	hasPassword   bool
	keyDerivation string
	kdfOpts       crypto.Opts
	privPath      string
	prefix        string
	env           string
	hasEnv        bool
	cipher        string
	cipherOpts    crypto.Opts

	privPathResolver PrivPathResolver
	envResolver      EnvResolver
}

// Option customizes resolution.
type Option func(*options)

// WithKey supplies a raw symmetric key. It takes precedence over a
// password.
func WithKey(key []byte) Option {
	return func(o *options) { o.key = key }
}

// WithPassword supplies a password to run through the key-derivation
// provider.
func WithPassword(password string) Option {
	return func(o *options) {
		o.password = password
		o.hasPassword = true
	}
}

// WithKeyDerivation selects the KDF provider used for a password.
func WithKeyDerivation(name string) Option {
	return func(o *options) { o.keyDerivation = name }
}

// WithKeyDerivationOpts passes provider-specific KDF options.
func WithKeyDerivationOpts(opts crypto.Opts) Option {
	return func(o *options) { o.kdfOpts = opts }
}

// WithPrivPath overrides the private-data root directory.
func WithPrivPath(path string) Option {
	return func(o *options) { o.privPath = path }
}

// WithPrefix overrides the store namespace prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnv overrides the logical environment name. An explicit empty
// string is honored.
func WithEnv(env string) Option {
	return func(o *options) {
		o.env = env
		o.hasEnv = true
	}
}

// WithCipher selects the cipher provider.
func WithCipher(name string) Option {
	return func(o *options) { o.cipher = name }
}

// WithCipherOpts passes provider-specific cipher options.
func WithCipherOpts(opts crypto.Opts) Option {
	return func(o *options) { o.cipherOpts = opts }
}

// WithPrivPathResolver replaces the default private-data directory
// collaborator.
func WithPrivPathResolver(r PrivPathResolver) Option {
	return func(o *options) { o.privPathResolver = r }
}

// WithEnvResolver replaces the default environment-name collaborator.
func WithEnvResolver(r EnvResolver) Option {
	return func(o *options) { o.envResolver = r }
}

// Resolve assembles a Config for app. The key is taken verbatim when
// supplied; otherwise it is derived from the password via the chosen
// KDF provider. With neither, resolution fails with ErrNoKey. All
// remaining fields default deterministically.
func Resolve(app string, opts ...Option) (*Config, error) {
	o := options{
		keyDerivation:    crypto.DefaultKDF,
		cipher:           crypto.DefaultCipher,
		privPathResolver: DefaultPrivPath,
		envResolver:      DefaultEnv,
	}
	for _, opt := range opts {
		opt(&o)
	}

	key := o.key
	if len(key) == 0 {
		if !o.hasPassword {
			return nil, models.ErrNoKey
		}
		kdf, err := crypto.LookupKDF(o.keyDerivation)
		if err != nil {
			return nil, err
		}
		key, err = kdf.Derive(o.password, o.kdfOpts)
		if err != nil {
			return nil, err
		}
	}

	if _, err := crypto.LookupCipher(o.cipher); err != nil {
		return nil, err
	}

	privPath := o.privPath
	if privPath == "" {
		privPath = o.privPathResolver(app)
	}
	prefix := o.prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	env := o.env
	if !o.hasEnv {
		env = o.envResolver()
	}

	return &Config{
		App:        app,
		Key:        key,
		Env:        env,
		Cipher:     o.cipher,
		CipherOpts: o.cipherOpts,
		PrivPath:   privPath,
		Prefix:     prefix,
	}, nil
}
