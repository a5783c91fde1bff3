package configs

import (
	"fmt"
	"time"
)

const (
	ProviderNone    = "none"
	ProviderGroq    = "groq"
	ProviderBedrock = "bedrock"
)

// Completion selects the optional text-completion backend. With provider
// "none", or "groq" without an API key, insights come from templates only.
type Completion struct {
	Provider    string        `env:"PROVIDER" envDefault:"none"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"1024"`
	Temperature float64       `env:"TEMPERATURE" envDefault:"0.7"`

	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GroqEndpoint string `env:"GROQ_ENDPOINT" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel    string `env:"GROQ_MODEL" envDefault:"llama3-8b-8192"`

	BedrockRegion string `env:"BEDROCK_REGION" envDefault:"us-east-1"`
	BedrockModel  string `env:"BEDROCK_MODEL" envDefault:"anthropic.claude-3-haiku-20240307-v1:0"`
}

func (c Completion) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderGroq, ProviderBedrock:
	default:
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}

// Enabled reports whether a backend should be wired.
func (c Completion) Enabled() bool {
	switch c.Provider {
	case ProviderGroq:
		return c.GroqAPIKey != ""
	case ProviderBedrock:
		return true
	default:
		return false
	}
}
