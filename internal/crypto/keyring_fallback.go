//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
)

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

// GetKey retrieves the encryption key from the INVOICEDESK_DB_KEY environment variable
func (k *fallbackKeyring) GetKey() (string, error) {
	key, ok := envKey()
	if !ok {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}

	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *fallbackKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please export %s before starting invoicedesk", EnvKey)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteKey() error {
	return fmt.Errorf("keyring not available on this platform: please unset %s manually", EnvKey)
}

// IsAvailable reports whether the key variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	_, ok := envKey()
	return ok
}
