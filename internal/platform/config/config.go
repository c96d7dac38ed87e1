// Package config reads process-level settings from the environment. Flags
// still win; these are the defaults a deployment bakes into its .env.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	OutputDir   string `envconfig:"OUTPUT_DIR" default:"out"`
	FFmpegPath  string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath string `envconfig:"FFPROBE_PATH" default:"ffprobe"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Workers     int    `envconfig:"WORKERS" default:"0"`
}

// Load reads the environment, after a best-effort .env load.
func Load() (Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return e, nil
}
