package secrets

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) string {
	t.Helper()
	return hex.EncodeToString(make([]byte, 32))
}

func TestNewSecretboxStore_KeyValidation(t *testing.T) {
	_, err := NewSecretboxStore("not-hex")
	assert.Error(t, err)

	_, err = NewSecretboxStore(hex.EncodeToString(make([]byte, 16)))
	assert.Error(t, err, "short key should be rejected")

	_, err = NewSecretboxStore(testKey(t))
	assert.NoError(t, err)
}

func TestSecretboxStore_RoundTrip(t *testing.T) {
	store, err := NewSecretboxStore(testKey(t))
	require.NoError(t, err)

	plaintext := []byte(`{"clientId":"abc","clientSecret":"shh","tokenUrl":"https://bank.example/oauth/token"}`)

	handle, err := store.Seal(context.Background(), plaintext)
	require.NoError(t, err)
	assert.NotContains(t, handle, "clientSecret", "handle must not leak plaintext")

	opened, err := store.Open(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestSecretboxStore_FreshNoncePerSeal(t *testing.T) {
	store, err := NewSecretboxStore(testKey(t))
	require.NoError(t, err)

	first, err := store.Seal(context.Background(), []byte("same"))
	require.NoError(t, err)
	second, err := store.Seal(context.Background(), []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "sealing twice must not repeat ciphertext")
}

func TestSecretboxStore_OpenRejectsBadInput(t *testing.T) {
	store, err := NewSecretboxStore(testKey(t))
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "%%%not-base64%%%")
	assert.Error(t, err)

	_, err = store.Open(context.Background(), "c2hvcnQ=") // decodes to fewer bytes than a nonce
	assert.Error(t, err)

	handle, err := store.Seal(context.Background(), []byte("secret"))
	require.NoError(t, err)

	otherKey := make([]byte, 32)
	otherKey[0] = 1
	otherStore, err := NewSecretboxStore(hex.EncodeToString(otherKey))
	require.NoError(t, err)

	_, err = otherStore.Open(context.Background(), handle)
	assert.Error(t, err, "wrong key must not open the handle")
}
