// Package editor implements the interactive editing workflow: fetch a
// secret's plaintext, hand it to an external editor, write the edited
// plaintext back.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sealbox/sealbox/internal/config"
	"github.com/sealbox/sealbox/internal/events"
	"github.com/sealbox/sealbox/internal/models"
	"github.com/sealbox/sealbox/internal/store"
)

// DefaultEditor is used when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vi"

// Editor drives the edit workflow against a secret store.
type Editor struct {
	store   *store.Store
	logger  *events.Logger
	command string
}

// New creates an editor workflow. The editor command comes from
// $VISUAL, then $EDITOR, then DefaultEditor.
func New(st *store.Store, logger *events.Logger) *Editor {
	command := os.Getenv("VISUAL")
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		command = DefaultEditor
	}

	return &Editor{
		store:   st,
		logger:  logger.WithField("component", "editor"),
		command: command,
	}
}

// NewWithCommand creates an editor workflow with an explicit command.
func NewWithCommand(st *store.Store, logger *events.Logger, command string) *Editor {
	e := New(st, logger)
	e.command = command
	return e
}

// Edit fetches the named secret, opens its plaintext in the editor, and
// writes the result back. A secret that does not exist yet starts
// empty. Editor failures abort without touching the store; unchanged
// content skips the write.
func (e *Editor) Edit(cfg *config.Config, name string) error {
	plaintext, err := e.store.Fetch(cfg, name)
	if err != nil && !errors.Is(err, models.ErrSecretNotFound) {
		return err
	}

	edited, err := e.runEditor(name, plaintext)
	if err != nil {
		return err
	}

	if bytes.Equal(edited, plaintext) {
		e.logger.WithField("name", name).Debug("Secret unchanged, skipping write")
		return nil
	}
	return e.store.Put(cfg, name, edited)
}

// runEditor round-trips content through a 0600 temp file and the
// external editor process.
func (e *Editor) runEditor(name string, content []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "sealbox-edit-*")
	if err != nil {
		return nil, &models.EditorError{Editor: e.command, Err: err}
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, &models.EditorError{Editor: e.command, Err: err}
	}

	cmd := exec.Command(e.command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, &models.EditorError{Editor: e.command, Err: fmt.Errorf("run editor: %w", err)}
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.EditorError{Editor: e.command, Err: err}
	}
	return edited, nil
}
