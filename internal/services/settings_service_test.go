package services

import (
	"testing"

	"hwreview_backend/internal/models"
	"hwreview_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSetting(grouped dto.GroupedSettings, category, key string) (dto.SettingValue, bool) {
	for _, val := range grouped[category] {
		if val.Key == key {
			return val, true
		}
	}
	return dto.SettingValue{}, false
}

func TestMergeSettingsDefaultsOnly(t *testing.T) {
	grouped := mergeSettings(nil)

	siteName, ok := findSetting(grouped, "general", "site_name")
	require.True(t, ok)
	assert.Equal(t, "Hardware Review", siteName.Value)
	assert.True(t, siteName.IsPublic)

	color, ok := findSetting(grouped, "appearance", "primary_color")
	require.True(t, ok)
	assert.Equal(t, "#3b82f6", color.Value)
}

func TestMergeSettingsStoredOverridesDefault(t *testing.T) {
	grouped := mergeSettings([]models.SiteSetting{
		{Key: "site_name", Value: "Overclocked Weekly", Category: "general"},
	})

	siteName, ok := findSetting(grouped, "general", "site_name")
	require.True(t, ok)
	assert.Equal(t, "Overclocked Weekly", siteName.Value)

	// Description comes from the catalog even when the value is stored.
	assert.NotEmpty(t, siteName.Description)
}

func TestMergeSettingsExtrasLandInAdvanced(t *testing.T) {
	grouped := mergeSettings([]models.SiteSetting{
		{Key: "custom_footer", Value: "custom"},
		{Key: "beta_banner", Value: "on"},
	})

	footer, ok := findSetting(grouped, "advanced", "custom_footer")
	require.True(t, ok)
	assert.Equal(t, "custom", footer.Value)

	// Extras are sorted by key.
	advanced := grouped["advanced"]
	var extraKeys []string
	for _, val := range advanced {
		if val.Key == "beta_banner" || val.Key == "custom_footer" {
			extraKeys = append(extraKeys, val.Key)
		}
	}
	assert.Equal(t, []string{"beta_banner", "custom_footer"}, extraKeys)
}

func TestMergeSettingsKeepsStoredCategory(t *testing.T) {
	grouped := mergeSettings([]models.SiteSetting{
		{Key: "webhook_url", Value: "https://example.com/hook", Category: "integrations"},
	})

	hook, ok := findSetting(grouped, "integrations", "webhook_url")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/hook", hook.Value)
}
