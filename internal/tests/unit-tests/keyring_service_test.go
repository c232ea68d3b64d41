package unit_tests

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/services"
)

func TestKeyringService_StoreGetDelete(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring(nil))

	require.NoError(t, service.StoreApiKey("gemini", []byte("secret")))
	key, err := service.GetApiKey("gemini")
	require.NoError(t, err)
	assert.Equal(t, "secret", key)

	require.NoError(t, service.DeleteApiKey("gemini"))
	_, err = service.GetApiKey("gemini")
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)

	assert.NoError(t, service.DeleteApiKey("gemini"))
}

func TestKeyringService_Validation(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring(nil))

	assert.Error(t, service.StoreApiKey("gemini", nil))
	assert.Error(t, service.StoreApiKey(" ", []byte("x")))
	_, err := service.GetApiKey("")
	assert.Error(t, err)
	assert.Error(t, service.DeleteApiKey(""))
}

func TestKeyringService_ListHidesSecrets(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring([]keyring.Item{
		{Key: "openai", Data: []byte("oa")},
		{Key: "gemini", Data: []byte("gm")},
	}))

	list, err := service.ListApiKeys()
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "gemini", list[0]["provider"])
	assert.Equal(t, "openai", list[1]["provider"])
	for _, entry := range list {
		assert.NotContains(t, entry, "key")
	}
}
