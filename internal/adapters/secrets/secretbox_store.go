// Package secrets seals feed credentials with a symmetric key so only opaque
// handles ever reach the database.
package secrets

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/fxledger/fxledger/internal/core/ports/providers"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errHandleTooShort = errors.New("handle shorter than nonce")

// SecretboxStore encrypts credentials with nacl/secretbox. Handles are
// base64(nonce || ciphertext); the nonce is fresh per Seal call.
type SecretboxStore struct {
	key [32]byte
}

// NewSecretboxStore builds a store from a 64-character hex key.
func NewSecretboxStore(hexKey string) (*SecretboxStore, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret store key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("secret store key must be 32 bytes, got %d", len(raw))
	}
	s := &SecretboxStore{}
	copy(s.key[:], raw)
	return s, nil
}

var _ providers.SecretStore = (*SecretboxStore)(nil)

// Seal encrypts plaintext credentials and returns the storable handle.
func (s *SecretboxStore) Seal(_ context.Context, plaintext []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a handle back into the credential plaintext.
func (s *SecretboxStore) Open(_ context.Context, handle string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to decode handle: %w", err)
	}
	if len(sealed) < nonceSize {
		return nil, errHandleTooShort
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errors.New("failed to open handle: key mismatch or corrupt data")
	}
	return plaintext, nil
}
