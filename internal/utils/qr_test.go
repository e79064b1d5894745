package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateQRCodeProducesPNG(t *testing.T) {
	png, err := GenerateQRCode("rec-123", "0xabc", "http://localhost:3000")
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:4])
}

func TestGenerateQRCodeDeterministic(t *testing.T) {
	a, err := GenerateQRCode("rec-123", "0xabc", "http://localhost:3000")
	require.NoError(t, err)
	b, err := GenerateQRCode("rec-123", "0xabc", "http://localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateQRCodeEmptyTxHash(t *testing.T) {
	// A record whose notarization failed still gets a scannable QR code.
	png, err := GenerateQRCode("rec-123", "", "http://localhost:3000")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestGenerateQRCodeOversizedPayload(t *testing.T) {
	// QR capacity tops out below 3KB; an oversized payload must fail
	// instead of being truncated.
	_, err := GenerateQRCode("rec-123", strings.Repeat("f", 4000), "http://localhost:3000")
	assert.Error(t, err)
}
