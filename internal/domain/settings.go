package domain

// Settings is the admin-editable global configuration. The gateway
// parameters are read on every AI call, never cached.
type Settings struct {
	AppName         string  `json:"app_name"`
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"top_p"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	DemoWarning     string  `json:"demo_warning"`
	APIKey          string  `json:"api_key"`
}

// DefaultSettings returns the initial global configuration
func DefaultSettings() Settings {
	return Settings{
		AppName:         "Demo de Agentes de IA",
		Model:           "google/gemini-3-flash-preview",
		Temperature:     0.7,
		TopP:            0.95,
		MaxOutputTokens: 1024,
		DemoWarning:     "Ambiente de demonstração. Nenhum dado real é enviado para uma agenda.",
	}
}

// UpdateSettingsRequest is the request to change global configuration.
// Pointer fields distinguish "leave unchanged" from explicit zero values.
type UpdateSettingsRequest struct {
	AppName         *string  `json:"app_name,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`
	DemoWarning     *string  `json:"demo_warning,omitempty"`
	APIKey          *string  `json:"api_key,omitempty"`
}

// ExportDocument is the full-catalog backup format. Import merges any
// top-level field that is present and leaves the rest untouched.
type ExportDocument struct {
	GlobalConfig *Settings `json:"global_config,omitempty"`
	Niches       []*Niche  `json:"niches,omitempty"`
	APIKey       *string   `json:"api_key,omitempty"`
}
