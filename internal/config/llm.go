package config

// Supported completion providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default models per provider, used when llm.model is empty.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{ProviderGemini, ProviderOpenAI}

// LLMConfig configures the completion gateway.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"` // empty = provider default endpoint
}

// HasCredential reports whether an API key is configured.
func (c LLMConfig) HasCredential() bool {
	return c.APIKey != ""
}

// GetModel returns the configured model or the provider default.
func (c LLMConfig) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

func isValidProvider(p string) bool {
	for _, v := range ValidProviders {
		if p == v {
			return true
		}
	}
	return false
}
