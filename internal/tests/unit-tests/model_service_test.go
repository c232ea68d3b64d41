package unit_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/llm/client"
	"innovateai/internal/services"
)

func TestModelCatalog_EmbeddedProviders(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	groups, err := catalog.ListModelGroups()
	require.NoError(t, err)

	var ids []string
	for _, g := range groups {
		ids = append(ids, g.ProviderID)
		assert.NotEmpty(t, g.Models, g.ProviderID)
	}
	assert.Equal(t, []string{client.ProviderGemini, client.ProviderOpenAI, client.ProviderAnthropic}, ids)
}

func TestModelCatalog_DefaultGeminiMatchesGateway(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	mdl, err := catalog.DefaultModel(client.ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, client.DefaultModel, mdl.APIName)

	byKey, err := catalog.GetModel(mdl.Key)
	require.NoError(t, err)
	assert.Equal(t, *mdl, *byKey)
}

func TestModelCatalog_Unknown(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	_, err = catalog.GetModel("")
	assert.Error(t, err)
	_, err = catalog.GetModel("gemini|nope")
	assert.Error(t, err)
	_, err = catalog.DefaultModel("mystery")
	assert.Error(t, err)
}
