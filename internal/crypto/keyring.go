package crypto

import (
	"fmt"
	"os"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "invoicedesk"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the stored key on every platform and is the only
	// source where no keychain is available
	EnvKey = "INVOICEDESK_DB_KEY"
)

// PromptFunc asks the user for a new database password
type PromptFunc func() (string, error)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}

// Unlock returns the database key from k. When none is stored it asks prompt
// for a new one and stores it; first reports whether that happened.
func Unlock(k Keyring, prompt PromptFunc) (key string, first bool, err error) {
	if key, err := k.GetKey(); err == nil {
		return key, false, nil
	}

	key, err = prompt()
	if err != nil {
		return "", false, fmt.Errorf("failed to set password: %w", err)
	}
	if err := k.SetKey(key); err != nil {
		return "", false, fmt.Errorf("failed to store encryption key: %w", err)
	}
	return key, true, nil
}

func envKey() (string, bool) {
	key := os.Getenv(EnvKey)
	return key, key != ""
}
