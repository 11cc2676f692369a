package models

import (
	"errors"
	"fmt"
)

// Error codes for structured error handling.
const (
	ErrCodeConfig   = "CONFIG_ERROR"
	ErrCodeFormat   = "FORMAT_ERROR"
	ErrCodeAuth     = "AUTH_ERROR"
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeStorage  = "STORAGE_ERROR"
	ErrCodeEditor   = "EDITOR_ERROR"
)

// Sentinel errors
var (
	ErrNoKey          = errors.New("no key or password specified")
	ErrSecretNotFound = errors.New("secret not found")
	ErrUnknownCipher  = errors.New("unknown cipher provider")
	ErrUnknownKDF     = errors.New("unknown key derivation function")
	ErrInvalidName    = errors.New("invalid secret name")
)

// FormatError indicates a packed blob that cannot be decoded: wrong
// cipher tag, truncated data, or a corrupt length prefix. It is never
// retryable.
type FormatError struct {
	Tag    string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("malformed blob [%s]: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("malformed blob: %s", e.Reason)
}

// AuthError indicates ciphertext that failed integrity verification.
// Treated as corruption or tampering; no plaintext is ever returned
// alongside it.
type AuthError struct {
	Cipher string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed [%s]: %v", e.Cipher, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// StorageError wraps a filesystem failure while reading or writing a
// secret file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// EditorError indicates the external editing workflow failed before a
// value could be written back.
type EditorError struct {
	Editor string
	Err    error
}

func (e *EditorError) Error() string {
	return fmt.Sprintf("editor %s: %v", e.Editor, e.Err)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}
