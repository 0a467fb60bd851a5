package config

import "os"

// BedrockConfig holds configuration for the Bedrock runtime enrichment call
type BedrockConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	ModelID   string `json:"modelId"`
	TimeoutMS int    `json:"timeoutMs"`
	MaxTokens int    `json:"maxTokens"` // output-length budget for one reply
}

// DefaultBedrockConfig returns the default enrichment configuration
func DefaultBedrockConfig() *BedrockConfig {
	return &BedrockConfig{
		APIKey:    os.Getenv("BEDROCK_API_KEY"),
		BaseURL:   getEnvOrDefault("BEDROCK_BASE_URL", "https://bedrock-runtime.us-east-1.amazonaws.com"),
		ModelID:   getEnvOrDefault("BEDROCK_MODEL_ID", "us.anthropic.claude-3-5-haiku-20241022-v1:0"),
		TimeoutMS: 15000,
		MaxTokens: 2500,
	}
}

// IsEnabled returns true if the enrichment API is configured
func (c *BedrockConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ConverseEndpoint returns the full converse URL for the configured model
func (c *BedrockConfig) ConverseEndpoint() string {
	return c.BaseURL + "/model/" + c.ModelID + "/converse"
}
