package config

import (
	"fmt"
	"time"
)

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // пустое значение = официальный API
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Validate проверяет корректность конфигурации OpenAI
func (c *OpenAIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}

	return nil
}
