package ai

import (
	"strings"

	"github.com/fdg312/fitcoach/internal/config"
)

const (
	ModeMock   = "mock"
	ModeGemini = "gemini"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeGemini:
		return NewGeminiProvider(cfg)
	default:
		return NewMockProvider()
	}
}
