// ABOUTME: Chat-completion providers and their default endpoints and models.
// ABOUTME: Every provider speaks the OpenAI-style /chat/completions protocol.
package coach

import (
	"fmt"
	"strings"
)

// Provider names an LLM vendor.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderOpenAI     Provider = "openai"
	ProviderDeepSeek   Provider = "deepseek"
	ProviderZhipu      Provider = "zhipu"
)

type providerDefaults struct {
	baseURL   string
	model     string
	apiKeyEnv string
}

var defaults = map[Provider]providerDefaults{
	ProviderOpenRouter: {"https://openrouter.ai/api/v1", "openai/gpt-4o-mini", "OPENROUTER_API_KEY"},
	ProviderOpenAI:     {"https://api.openai.com/v1", "gpt-4o-mini", "OPENAI_API_KEY"},
	ProviderDeepSeek:   {"https://api.deepseek.com/v1", "deepseek-chat", "DEEPSEEK_API_KEY"},
	ProviderZhipu:      {"https://open.bigmodel.cn/api/paas/v4", "glm-4-flash", "ZHIPU_API_KEY"},
}

// Providers lists the supported providers in a stable order.
func Providers() []Provider {
	return []Provider{ProviderOpenRouter, ProviderOpenAI, ProviderDeepSeek, ProviderZhipu}
}

// ParseProvider validates a provider name. Empty means openrouter.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return ProviderOpenRouter, nil
	}
	if _, ok := defaults[p]; !ok {
		return "", fmt.Errorf("unknown provider: %q", s)
	}
	return p, nil
}

// DefaultBaseURL returns the provider's API base URL.
func (p Provider) DefaultBaseURL() string {
	return defaults[p].baseURL
}

// DefaultModel returns the provider's default chat model.
func (p Provider) DefaultModel() string {
	return defaults[p].model
}

// DefaultAPIKeyEnv returns the environment variable conventionally holding the provider's key.
func (p Provider) DefaultAPIKeyEnv() string {
	return defaults[p].apiKeyEnv
}
