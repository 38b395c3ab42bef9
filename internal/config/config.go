package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	ProjectID string `koanf:"PROJECTID"`
	Region    string `koanf:"REGION"`
	LogLevel  string `koanf:"LOGLEVEL"`
	Port      string `koanf:"PORT"`

	// ParserMode picks the text normalization strategy once at startup:
	// "mock" (regex only), "gemini" (Vertex, regex fallback on any error) or
	// "openai" (regex fallback on quota errors only).
	ParserMode string `koanf:"PARSERMODE"`

	VertexModel       string `koanf:"VERTEXMODEL"`
	VertexVisionModel string `koanf:"VERTEXVISIONMODEL"`
	OpenAIAPIKey      string `koanf:"OPENAIAPIKEY"`
	OpenAIModel       string `koanf:"OPENAIMODEL"`

	// AuthRequired gates the expense routes behind Firebase bearer auth.
	AuthRequired bool `koanf:"AUTHREQUIRED"`
}

func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ParserMode == "" {
		cfg.ParserMode = "gemini"
	}
	if cfg.VertexModel == "" {
		cfg.VertexModel = "gemini-1.5-flash"
	}
	if cfg.VertexVisionModel == "" {
		cfg.VertexVisionModel = "gemini-1.5-flash-latest"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	return &cfg, nil
}
