package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName is the keyring service name for awslaunch
	ServiceName = "awslaunch"
)

var (
	// ErrExternalIDNotFound is returned when no external ID is stored for an account
	ErrExternalIDNotFound = errors.New("external ID not found in keyring")
	// ErrKeyringUnavailable is returned when keyring is not available
	ErrKeyringUnavailable = errors.New("keyring is not available on this system")
)

// Keyring stores per-account external IDs in the OS credential store.
type Keyring struct {
	serviceName string
}

// New creates a new Keyring instance
func New() *Keyring {
	return &Keyring{
		serviceName: ServiceName,
	}
}

// NewWithService creates a new Keyring with a custom service name (useful for testing)
func NewWithService(serviceName string) *Keyring {
	return &Keyring{
		serviceName: serviceName,
	}
}

// SaveExternalID stores the external ID for the given account
func (k *Keyring) SaveExternalID(accountID, externalID string) error {
	if err := keyring.Set(k.serviceName, accountID, externalID); err != nil {
		return fmt.Errorf("failed to save external ID: %w", err)
	}
	return nil
}

// GetExternalID retrieves the external ID for the given account
func (k *Keyring) GetExternalID(accountID string) (string, error) {
	externalID, err := keyring.Get(k.serviceName, accountID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrExternalIDNotFound
		}
		return "", fmt.Errorf("failed to get external ID: %w", err)
	}
	return externalID, nil
}

// DeleteExternalID removes the external ID for the given account
func (k *Keyring) DeleteExternalID(accountID string) error {
	if err := keyring.Delete(k.serviceName, accountID); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrExternalIDNotFound
		}
		return fmt.Errorf("failed to delete external ID: %w", err)
	}
	return nil
}

// HasExternalID checks if an external ID exists for the given account
func (k *Keyring) HasExternalID(accountID string) bool {
	_, err := k.GetExternalID(accountID)
	return err == nil
}

// IsAvailable checks if the keyring is available on this system
func (k *Keyring) IsAvailable() bool {
	// Try a no-op set/delete with a test key
	testKey := "__awslaunch_keyring_test__"
	testValue := "test"

	err := keyring.Set(k.serviceName, testKey, testValue)
	if err != nil {
		return false
	}

	_ = keyring.Delete(k.serviceName, testKey)
	return true
}

// Package-level convenience functions

// SaveExternalID stores an external ID using the default service name
func SaveExternalID(accountID, externalID string) error {
	return New().SaveExternalID(accountID, externalID)
}

// GetExternalID retrieves an external ID using the default service name
func GetExternalID(accountID string) (string, error) {
	return New().GetExternalID(accountID)
}

// DeleteExternalID removes an external ID using the default service name
func DeleteExternalID(accountID string) error {
	return New().DeleteExternalID(accountID)
}

// HasExternalID checks if an external ID exists using the default service name
func HasExternalID(accountID string) bool {
	return New().HasExternalID(accountID)
}

// IsAvailable checks if keyring is available using the default service name
func IsAvailable() bool {
	return New().IsAvailable()
}
