package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFileHashDeterminism(t *testing.T) {
	content := []byte("some medical record bytes")
	assert.Equal(t, CalculateFileHash(content), CalculateFileHash(content))
}

func TestCalculateFileHashKnownVectors(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		CalculateFileHash(nil), "empty input must hash to the digest of the empty string")

	assert.Equal(t,
		"e5c62df5dab5c87b6a015ef3d43597074d1eec433b15f51aec63b8582d0e4ab4",
		CalculateFileHash([]byte("%PDF-1.4\n")))
}

func TestCalculateFileHashDistinctInputs(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("b"),
		[]byte("%PDF-1.4\n"),
		[]byte("%PDF-1.4"),
	}
	seen := make(map[string]bool)
	for _, in := range inputs {
		digest := CalculateFileHash(in)
		assert.Len(t, digest, 64)
		assert.False(t, seen[digest], "digest collision for input %q", in)
		seen[digest] = true
	}
}
