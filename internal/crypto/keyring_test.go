package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKeyring struct {
	key    string
	setErr error
}

func (m *memKeyring) GetKey() (string, error) {
	if m.key == "" {
		return "", errors.New("not found")
	}
	return m.key, nil
}

func (m *memKeyring) SetKey(password string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.key = password
	return nil
}

func (m *memKeyring) DeleteKey() error  { m.key = ""; return nil }
func (m *memKeyring) IsAvailable() bool { return true }

func TestUnlock_StoredKey(t *testing.T) {
	k := &memKeyring{key: "s3cret"}
	key, first, err := Unlock(k, func() (string, error) {
		t.Fatal("prompt must not be called when a key is stored")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)
	assert.False(t, first)
}

func TestUnlock_FirstRunStoresPromptedKey(t *testing.T) {
	k := &memKeyring{}
	key, first, err := Unlock(k, func() (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", key)
	assert.True(t, first)
	assert.Equal(t, "fresh", k.key)
}

func TestUnlock_Failures(t *testing.T) {
	_, _, err := Unlock(&memKeyring{}, func() (string, error) { return "", errors.New("mismatch") })
	assert.ErrorContains(t, err, "failed to set password")

	_, _, err = Unlock(&memKeyring{setErr: errors.New("locked")}, func() (string, error) { return "pw", nil })
	assert.ErrorContains(t, err, "failed to store encryption key")
}

func TestNewKeyring_HonorsEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "from-env")
	key, err := NewKeyring().GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}
