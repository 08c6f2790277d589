// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package config loads the assistant configuration from embedded defaults
// overridden by ROBOTATOUILLE_ environment variables.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed conf/robotatouille.yaml
var defaults []byte

const envPrefix = "ROBOTATOUILLE_"

// LLM configures the language model clients.
type LLM struct {
	// ChatModel is the OpenAI model used for conversation.
	ChatModel string `koanf:"chatmodel"`

	// GeminiModel is the Gemini model used for structured recipe extraction.
	GeminiModel string `koanf:"geminimodel"`
}

// Gantt configures schedule rendering.
type Gantt struct {
	// OutputDir is the root directory for rendered charts and saved plans.
	OutputDir string `koanf:"outputdir"`

	// Raster enables PNG chart rendering.
	Raster bool `koanf:"raster"`

	// Interactive enables HTML chart rendering.
	Interactive bool `koanf:"interactive"`

	// GanttProject enables .gan project file export.
	GanttProject bool `koanf:"ganttproject"`

	// TextWidth is the terminal width used for text charts, 0 to autodetect.
	TextWidth int `koanf:"textwidth"`
}

// Hardware configures the enclosure buttons.
type Hardware struct {
	// Enabled turns on GPIO button polling.
	Enabled bool `koanf:"enabled"`

	// Pins are the BCM pin numbers to watch.
	Pins []int `koanf:"pins"`
}

// Config is the full assistant configuration.
type Config struct {
	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string `koanf:"loglevel"`

	// DefaultStepMinutes is the duration assigned to steps without timing.
	DefaultStepMinutes int `koanf:"defaultstepminutes"`

	LLM      LLM      `koanf:"llm"`
	Gantt    Gantt    `koanf:"gantt"`
	Hardware Hardware `koanf:"hardware"`
}

// Load returns the configuration from embedded defaults and environment
// overrides, e.g. ROBOTATOUILLE_LLM_CHATMODEL.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	p := env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	})
	if err := k.Load(p, nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return &c, nil
}
