package crypto

import (
	"github.com/sealbox/sealbox/internal/frame"
	"github.com/sealbox/sealbox/internal/models"
)

// CipherPlaintext identifies the no-op reference provider. It performs
// no encryption at all: the blob is the plaintext packed under its tag.
// Use it only in tests or on filesystems that are themselves encrypted.
const CipherPlaintext = "plaintext"

const plaintextTag = "PLAIN"

func init() {
	RegisterCipher(CipherPlaintext, plaintext{})
}

type plaintext struct{}

func (plaintext) Encrypt(_, pt []byte, _ Opts) ([]byte, error) {
	return frame.Pack(plaintextTag, [][]byte{pt}), nil
}

func (plaintext) Decrypt(_, blob []byte, _ Opts) ([]byte, error) {
	parts, err := frame.Unpack(plaintextTag, blob)
	if err != nil {
		return nil, err
	}
	if len(parts) != 1 {
		return nil, &models.FormatError{Tag: plaintextTag, Reason: "expected a single part"}
	}
	return parts[0], nil
}
