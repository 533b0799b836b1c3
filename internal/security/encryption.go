package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
)

// EncryptionService encrypts and hashes the secret material the ledger and
// app-secret domains need to persist (Stripe keys, app secret key material).
type EncryptionService interface {
	// Encrypt returns hex(iv):hex(tag):hex(ciphertext).
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt.
	Decrypt(ciphertext string) (string, error)

	// Hash creates a one-way hash of the input value using SHA-256.
	Hash(value string) string
}

type aesEncryptionService struct {
	key    []byte
	logger *logger.Logger
}

// NewEncryptionService creates a new encryption service using the master key from config.
func NewEncryptionService(cfg *config.Configuration, logger *logger.Logger) (EncryptionService, error) {
	if cfg.Secrets.EncryptionKey == "" {
		return nil, errors.NewError("master encryption key not configured").Mark(errors.ErrSystem)
	}

	key := []byte(cfg.Secrets.EncryptionKey)

	// Ensure the key is exactly 32 bytes (256 bits) for AES-256.
	if len(key) != 32 {
		hasher := sha256.New()
		hasher.Write(key)
		key = hasher.Sum(nil)
	}

	return &aesEncryptionService{
		key:    key,
		logger: logger,
	}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns a
// hex(iv):hex(tag):hex(ciphertext) string, so operators can tell the three
// components apart in logs and migrations without decoding base64.
func (s *aesEncryptionService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to create cipher block").Mark(errors.ErrSystem)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to create GCM").Mark(errors.ErrSystem)
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", errors.WithError(err).WithMessage("failed to generate iv").Mark(errors.ErrSystem)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	tagStart := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext),
	}, ":"), nil
}

// Decrypt reverses Encrypt, expecting hex(iv):hex(tag):hex(ciphertext).
func (s *aesEncryptionService) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	parts := strings.Split(ciphertext, ":")
	if len(parts) != 3 {
		return "", errors.NewError("malformed ciphertext").Mark(errors.ErrSystem)
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to decode iv").Mark(errors.ErrSystem)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to decode tag").Mark(errors.ErrSystem)
	}
	body, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to decode ciphertext").Mark(errors.ErrSystem)
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to create cipher block").Mark(errors.ErrSystem)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to create GCM").Mark(errors.ErrSystem)
	}
	if len(iv) != gcm.NonceSize() {
		return "", errors.NewError("invalid iv length").Mark(errors.ErrSystem)
	}

	sealed := append(body, tag...)
	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", errors.WithError(err).WithMessage("failed to decrypt ciphertext").Mark(errors.ErrSystem)
	}

	return string(plaintext), nil
}

// Hash creates a one-way hash of the input value using SHA-256.
func (s *aesEncryptionService) Hash(value string) string {
	if value == "" {
		return ""
	}
	hasher := sha256.New()
	hasher.Write([]byte(value))
	return hex.EncodeToString(hasher.Sum(nil))
}

// GenerateRandomKey generates a random 32-byte key for AES-256.
func GenerateRandomKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
