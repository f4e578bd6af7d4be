package providers

import "context"

// SecretStore seals feed credentials and returns an opaque handle the
// engine can persist. Key management and rotation are the implementation's
// contract; the engine only ever sees handles.
type SecretStore interface {
	// Seal encrypts plaintext credentials and returns the storable handle.
	Seal(ctx context.Context, plaintext []byte) (string, error)

	// Open decrypts a handle back into the credential plaintext.
	Open(ctx context.Context, handle string) ([]byte, error)
}
