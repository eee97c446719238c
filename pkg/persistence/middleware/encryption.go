package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
)

// envelopePrefix marks encrypted entry text.
const envelopePrefix = "enc:v1:"

// ErrNotEncrypted is returned when a stored entry lacks the encryption envelope.
var ErrNotEncrypted = errors.New("transcript entry is missing encrypted data envelope")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.TranscriptStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals entry text with
// AES-GCM. Ids, speakers and timestamps stay readable for auditing.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.TranscriptStore) ports.TranscriptStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

// ParseKey decodes a base64 AES-256 key.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid transcript key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid transcript key: got %d bytes, want 32", len(key))
	}
	return key, nil
}

func (m *encryptionMiddleware) Append(ctx context.Context, sessionID string, entry ports.TranscriptEntry) error {
	ciphertext, err := encrypt([]byte(entry.Text), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt entry: %w", err)
	}
	entry.Text = envelopePrefix + base64.StdEncoding.EncodeToString(ciphertext)
	return m.next.Append(ctx, sessionID, entry)
}

func (m *encryptionMiddleware) List(ctx context.Context, sessionID string) ([]ports.TranscriptEntry, error) {
	entries, err := m.next.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.TranscriptEntry, len(entries))
	for i, entry := range entries {
		encoded, ok := strings.CutPrefix(entry.Text, envelopePrefix)
		if !ok {
			// Fail secure: a plain entry in an encrypted transcript was not written by us.
			return nil, fmt.Errorf("%w: %s", ErrNotEncrypted, entry.ID)
		}
		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt entry %s: %w", entry.ID, err)
		}
		entry.Text = string(plain)
		out[i] = entry
	}
	return out, nil
}

// Helpers

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	for _, key := range append([][]byte{activeKey}, fallbackKeys...) {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}
