// Package config loads AbsherAi settings from an optional YAML file, a .env
// file and ABSHER_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when Load is given an empty path.
const DefaultFile = "absher.yaml"

// Config holds every host setting.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// FlowsDir is a loam repository of flow files; it wins over CatalogFile.
	FlowsDir    string `yaml:"flows_dir"`
	CatalogFile string `yaml:"catalog_file"`

	// SpeechConfig lists the speak/listen commands. A missing file disables speech.
	SpeechConfig string `yaml:"speech_config"`

	Redis RedisConfig `yaml:"redis"`

	// SessionID fixes the transcript session id instead of a random one.
	SessionID string `yaml:"session_id"`

	// MaskPII masks national ids and mobile numbers in stored transcripts.
	MaskPII bool `yaml:"mask_pii"`
	// TranscriptKey is a base64 AES-256 key; when set, transcript text is encrypted at rest.
	TranscriptKey string `yaml:"transcript_key"`

	HTTPPort int `yaml:"http_port"`
}

// RedisConfig enables the Redis transcript store when Addr is set.
type RedisConfig struct {
	Addr          string        `yaml:"addr"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	TranscriptTTL time.Duration `yaml:"transcript_ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		SpeechConfig: "speech.yaml",
		HTTPPort:     8080,
		MaskPII:      true,
		Redis: RedisConfig{
			TranscriptTTL: 24 * time.Hour,
		},
	}
}

// Load builds the configuration. A missing .env or YAML file is not an error
// unless path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("ABSHER_LOG_LEVEL", &c.LogLevel)
	str("ABSHER_FLOWS_DIR", &c.FlowsDir)
	str("ABSHER_CATALOG_FILE", &c.CatalogFile)
	str("ABSHER_SPEECH_CONFIG", &c.SpeechConfig)
	str("ABSHER_SESSION_ID", &c.SessionID)
	str("ABSHER_TRANSCRIPT_KEY", &c.TranscriptKey)
	str("ABSHER_REDIS_ADDR", &c.Redis.Addr)
	str("ABSHER_REDIS_PASSWORD", &c.Redis.Password)
	if err := num("ABSHER_REDIS_DB", &c.Redis.DB); err != nil {
		return err
	}
	if err := num("ABSHER_HTTP_PORT", &c.HTTPPort); err != nil {
		return err
	}
	if v, ok := lookup("ABSHER_MASK_PII"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid ABSHER_MASK_PII: %w", err)
		}
		c.MaskPII = b
	}
	if v, ok := lookup("ABSHER_TRANSCRIPT_TTL"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid ABSHER_TRANSCRIPT_TTL: %w", err)
		}
		c.Redis.TranscriptTTL = d
	}
	return nil
}

// Level parses LogLevel, defaulting to warn.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
