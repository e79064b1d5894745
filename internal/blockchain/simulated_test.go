package blockchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedClientNotarize(t *testing.T) {
	client := NewSimulatedClient()

	digest := "e5c62df5dab5c87b6a015ef3d43597074d1eec433b15f51aec63b8582d0e4ab4"
	txHash, err := client.Notarize(context.Background(), digest)
	require.NoError(t, err)
	assert.Equal(t, "0x_simulated_e5c62df5dab5c87b", txHash)
}

func TestSimulatedClientVerifyKnownDigest(t *testing.T) {
	client := NewSimulatedClient()

	digest := "abc123"
	_, err := client.Notarize(context.Background(), digest)
	require.NoError(t, err)

	result, err := client.Verify(context.Background(), digest)
	require.NoError(t, err)
	assert.True(t, result.IsVerified)
	assert.NotNil(t, result.Timestamp)
	assert.Equal(t, simulatedSigner, result.SignerAddress)
}

func TestSimulatedClientVerifyUnknownDigest(t *testing.T) {
	client := NewSimulatedClient()

	// A digest never submitted verifies as false, not as an error.
	result, err := client.Verify(context.Background(), "never-notarized")
	require.NoError(t, err)
	assert.False(t, result.IsVerified)
	assert.Nil(t, result.Timestamp)
}

func TestSimulatedClientCancelledContext(t *testing.T) {
	client := NewSimulatedClient()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Notarize(ctx, "abc")
	assert.Error(t, err)
	_, err = client.Verify(ctx, "abc")
	assert.Error(t, err)
}
