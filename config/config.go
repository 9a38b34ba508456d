package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/wikiplain/core/chunk"
	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/render"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

const envPrefix = "WIKIPLAIN_"

type Config struct {
	// HTTP client
	UserAgent   string
	HTTPTimeout time.Duration

	// Batch conversion
	Workers   int
	OutputDir string

	// Conversion limits
	MaxScanSteps  int
	MaxBraceDepth int
	LinkText      string

	// Embeddings
	OllamaURL      string
	EmbeddingModel string
	ChunkSize      int

	// PDF
	PDFFontPath string

	// Service
	ServeAddr      string
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		UserAgent:   envOr("USER_AGENT", fetch.DefaultUserAgent),
		HTTPTimeout: envDuration("HTTP_TIMEOUT", fetch.DefaultTimeout),

		Workers:   envInt("WORKERS", 4),
		OutputDir: os.Getenv(envPrefix + "OUTPUT_DIR"),

		MaxScanSteps:  envInt("MAX_SCAN_STEPS", wikitext.DefaultMaxScanSteps),
		MaxBraceDepth: envInt("MAX_BRACE_DEPTH", wikitext.DefaultMaxBraceDepth),
		LinkText:      envOr("LINK_TEXT", "target"),

		OllamaURL:      envOr("OLLAMA_URL", render.DefaultOllamaURL),
		EmbeddingModel: os.Getenv(envPrefix + "EMBEDDING_MODEL"),
		ChunkSize:      envInt("CHUNK_SIZE", chunk.DefaultChunkSize),

		PDFFontPath: os.Getenv(envPrefix + "PDF_FONT"),

		ServeAddr:      envOr("ADDR", ":8090"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = fetch.DefaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MaxScanSteps <= 0 {
		cfg.MaxScanSteps = wikitext.DefaultMaxScanSteps
	}
	if cfg.MaxBraceDepth <= 0 {
		cfg.MaxBraceDepth = wikitext.DefaultMaxBraceDepth
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunk.DefaultChunkSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := wikitext.ParseLinkText(c.LinkText); err != nil {
		return fmt.Errorf("%sLINK_TEXT: %w", envPrefix, err)
	}
	if c.Workers > 256 {
		return fmt.Errorf("%sWORKERS must be at most 256, got %d", envPrefix, c.Workers)
	}
	return nil
}

// Conversion returns the wikitext settings. Reference stripping is decided
// per article, so it is left unset.
func (c Config) Conversion() wikitext.Config {
	mode, _ := wikitext.ParseLinkText(c.LinkText)
	return wikitext.Config{
		MaxScanSteps:  c.MaxScanSteps,
		MaxBraceDepth: c.MaxBraceDepth,
		LinkText:      mode,
	}
}

// FetchOptions returns the HTTP client settings.
func (c Config) FetchOptions() fetch.Options {
	return fetch.Options{Timeout: c.HTTPTimeout, UserAgent: c.UserAgent}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(envPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
