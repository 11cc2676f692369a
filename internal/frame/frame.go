// Package frame implements the binary framing format shared by all
// cipher providers. A packed blob is a short ASCII tag followed by an
// ordered sequence of length-delimited parts, so any provider's output
// is self-identifying and splits back out exactly.
package frame

import (
	"bytes"
	"encoding/binary"

	"github.com/sealbox/sealbox/internal/models"
)

// Pack serializes parts under tag. Each part is prefixed with its byte
// length as a uvarint, so parts may be empty or contain arbitrary bytes.
func Pack(tag string, parts [][]byte) []byte {
	size := len(tag)
	for _, p := range parts {
		size += binary.MaxVarintLen64 + len(p)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, tag...)
	for _, p := range parts {
		buf = binary.AppendUvarint(buf, uint64(len(p)))
		buf = append(buf, p...)
	}
	return buf
}

// Unpack reverses Pack. It fails with a FormatError if the blob does
// not start with exactly tag, or if the remaining bytes are truncated
// relative to their declared lengths. The tag check is what keeps one
// cipher's output from reaching another cipher's decoder.
func Unpack(tag string, blob []byte) ([][]byte, error) {
	if len(blob) < len(tag) || !bytes.Equal(blob[:len(tag)], []byte(tag)) {
		return nil, &models.FormatError{Tag: tag, Reason: "tag mismatch"}
	}

	parts := [][]byte{}
	rest := blob[len(tag):]
	for len(rest) > 0 {
		length, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, &models.FormatError{Tag: tag, Reason: "corrupt part length"}
		}
		rest = rest[n:]
		if length > uint64(len(rest)) {
			return nil, &models.FormatError{Tag: tag, Reason: "truncated part"}
		}
		part := make([]byte, length)
		copy(part, rest[:length])
		parts = append(parts, part)
		rest = rest[length:]
	}
	return parts, nil
}
