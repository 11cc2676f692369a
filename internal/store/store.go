// Package store maps (configuration, secret name) to an encrypted file
// on disk and performs cipher-transparent reads and writes.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sealbox/sealbox/internal/config"
	"github.com/sealbox/sealbox/internal/crypto"
	"github.com/sealbox/sealbox/internal/events"
	"github.com/sealbox/sealbox/internal/models"
)

// fileExt marks secret files inside the namespace directory.
const fileExt = ".enc"

// Store performs encrypted secret reads and writes. It is stateless
// apart from its logger and safe for concurrent use; concurrent Puts to
// the same name from independent processes race at the filesystem level
// and the last writer wins.
type Store struct {
	logger *events.Logger
}

// New creates a secret store.
func New(logger *events.Logger) *Store {
	return &Store{
		logger: logger.WithField("component", "store"),
	}
}

// Path returns the file a named secret lives at: the (priv path,
// prefix, env) namespace plus the name. Distinct environments or
// prefixes sharing a priv path never collide.
func (s *Store) Path(cfg *config.Config, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(cfg.PrivPath, cfg.Prefix, cfg.Env, name+fileExt), nil
}

// Fetch reads and decrypts the named secret. A missing file yields
// ErrSecretNotFound; a wrong key or corrupted file surfaces the
// cipher's format or authentication error.
func (s *Store) Fetch(cfg *config.Config, name string) ([]byte, error) {
	path, err := s.Path(cfg, name)
	if err != nil {
		return nil, err
	}

	cipher, err := crypto.LookupCipher(cfg.Cipher)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", models.ErrSecretNotFound, name)
	}
	if err != nil {
		return nil, &models.StorageError{Op: "read", Path: path, Err: err}
	}

	plaintext, err := cipher.Decrypt(cfg.Key, blob, cfg.CipherOpts)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", name, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"name": name,
		"env":  cfg.Env,
	}).Debug("Fetched secret")

	return plaintext, nil
}

// Put encrypts plaintext and writes it to the secret's path, creating
// missing namespace directories. The write is atomic with respect to
// readers: data lands in a temp file that is renamed into place.
func (s *Store) Put(cfg *config.Config, name string, plaintext []byte) error {
	path, err := s.Path(cfg, name)
	if err != nil {
		return err
	}

	cipher, err := crypto.LookupCipher(cfg.Cipher)
	if err != nil {
		return err
	}

	blob, err := cipher.Encrypt(cfg.Key, plaintext, cfg.CipherOpts)
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &models.StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	tempPath := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tempPath, blob, 0o600); err != nil {
		return &models.StorageError{Op: "write", Path: tempPath, Err: err}
	}

	if file, err := os.Open(tempPath); err == nil {
		_ = file.Sync()
		file.Close()
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return &models.StorageError{Op: "rename", Path: path, Err: err}
	}

	s.logger.WithFields(map[string]interface{}{
		"name": name,
		"env":  cfg.Env,
		"size": len(blob),
	}).Debug("Stored secret")

	return nil
}

// Delete removes the named secret. Deleting a secret that does not
// exist yields ErrSecretNotFound.
func (s *Store) Delete(cfg *config.Config, name string) error {
	path, err := s.Path(cfg, name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", models.ErrSecretNotFound, name)
	}
	if err != nil {
		return &models.StorageError{Op: "delete", Path: path, Err: err}
	}

	s.logger.WithField("name", name).Debug("Deleted secret")
	return nil
}

// List returns the names of all secrets in the configuration's
// namespace, sorted. The namespace directory itself is the only index.
func (s *Store) List(cfg *config.Config) ([]string, error) {
	dir := filepath.Join(cfg.PrivPath, cfg.Prefix, cfg.Env)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "list", Path: dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// validateName rejects names that would escape the namespace directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", models.ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", models.ErrInvalidName, name)
	}
	return nil
}
