package dto

// SettingValue is one entry of the grouped settings payload.
type SettingValue struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// GroupedSettings maps category name to its settings, defaults merged
// with stored overrides.
type GroupedSettings map[string][]SettingValue

// BulkUpdateSettingsRequest carries key/value pairs from the admin
// settings form. File-backed keys (logo, favicon) arrive as multipart
// files and are handled separately by the service.
type BulkUpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}
