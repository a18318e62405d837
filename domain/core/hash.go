package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Short returns the first 12 hex characters
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeTableHash hashes rows of cells in order. Floats are written with
// full precision so two tables hash equal only if every value is bit-identical.
func ComputeTableHash(rows [][]interface{}) Hash {
	var data strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			switch v := cell.(type) {
			case float64:
				data.WriteString(fmt.Sprintf("%b", v))
			default:
				data.WriteString(fmt.Sprintf("%v", v))
			}
			data.WriteByte('|')
		}
		data.WriteByte('\n')
	}
	return NewHash([]byte(data.String()))
}
