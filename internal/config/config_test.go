package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  port: 9090
  rate_limit: 0

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

redis:
  addr: "redis:6379"
  key: "test:selection"

log:
  level: "debug"
  format: "text"

source:
  kind: "postgres"

selection:
  backend: "redis"

keyword:
  prefix_len: 6
  pick_top_k: 5
  consonant_exact_weight: 0.5

picture:
  placeholder_source: "walking"

batch:
  concurrency: 8
  word_timeout: "3s"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Port != 9090 || cfg.Server.RateLimit != 0 {
		t.Errorf("server = %+v", cfg.Server)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Redis / selection
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("redis.addr = %q", cfg.Redis.Addr)
	}
	if cfg.Redis.Key != "test:selection" {
		t.Errorf("redis.key = %q", cfg.Redis.Key)
	}
	if cfg.Selection.Backend != SelectionRedis {
		t.Errorf("selection.backend = %q, want %q", cfg.Selection.Backend, SelectionRedis)
	}

	// Keyword: explicit values and untouched defaults
	if cfg.Keyword.PrefixLen != 6 {
		t.Errorf("keyword.prefix_len = %d, want 6", cfg.Keyword.PrefixLen)
	}
	if cfg.Keyword.ConsonantExactWeight != 0.5 {
		t.Errorf("keyword.consonant_exact_weight = %v, want 0.5", cfg.Keyword.ConsonantExactWeight)
	}
	if cfg.Keyword.BigramWeight != 0.8 {
		t.Errorf("keyword.bigram_weight = %v, want 0.8 (default)", cfg.Keyword.BigramWeight)
	}
	if cfg.Keyword.RejectPenalty != 1000 {
		t.Errorf("keyword.reject_penalty = %v, want 1000 (default)", cfg.Keyword.RejectPenalty)
	}

	// Picture
	if cfg.Picture.PlaceholderSource != "walking" {
		t.Errorf("picture.placeholder_source = %q", cfg.Picture.PlaceholderSource)
	}
	if cfg.Picture.MaxSegments != 10 {
		t.Errorf("picture.max_segments = %d, want 10 (default)", cfg.Picture.MaxSegments)
	}

	// Batch
	if cfg.Batch.Concurrency != 8 {
		t.Errorf("batch.concurrency = %d, want 8", cfg.Batch.Concurrency)
	}
	if cfg.Batch.WordTimeout != 3*time.Second {
		t.Errorf("batch.word_timeout = %v, want 3s", cfg.Batch.WordTimeout)
	}

	// Log
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("BATCH_CONCURRENCY", "3")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Batch.Concurrency != 3 {
		t.Errorf("batch.concurrency = %d, want 3 (ENV override)", cfg.Batch.Concurrency)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Batch.Concurrency != 20 {
		t.Errorf("batch.concurrency = %d, want 20 (default)", cfg.Batch.Concurrency)
	}
	if cfg.Keyword.PrefixLen != 5 || cfg.Keyword.PickTopK != 10 {
		t.Errorf("keyword defaults = %+v", cfg.Keyword)
	}
	if cfg.Selection.Backend != SelectionMemory {
		t.Errorf("selection.backend = %q, want %q (default)", cfg.Selection.Backend, SelectionMemory)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("cors.allowed_origins = %q, want %q (default)", cfg.CORS.AllowedOrigins, "*")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PostgresSourceRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = "  "

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

func TestValidate_FileSourceRequiresPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Source = SourceConfig{Kind: SourceFile, KeywordFile: "keywords.tsv"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing picture file")
	}

	cfg.Source.PictureFile = "pictures.tsv"
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("file source should not need a DSN: %v", err)
	}
}

func TestValidate_UnknownSourceKind(t *testing.T) {
	cfg := validConfig()
	cfg.Source.Kind = "sqlite"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown source kind")
	}
}

func TestValidate_UnknownSelectionBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Selection.Backend = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown selection backend")
	}
}

func TestValidate_RedisBackendRequiresAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Selection.Backend = SelectionRedis
	cfg.Redis.Addr = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addr")
	}
}

func TestValidate_RedisBackendRequiresTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Selection.Backend = SelectionRedis
	cfg.Redis.Timeout = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero redis timeout")
	}

	cfg.Redis.Timeout = time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Server(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *ServerConfig)
	}{
		{"port zero", func(s *ServerConfig) { s.Port = 0 }},
		{"port too large", func(s *ServerConfig) { s.Port = 70000 }},
		{"negative rate limit", func(s *ServerConfig) { s.RateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Server)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_Keyword(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(k *KeywordConfig)
	}{
		{"prefix_len zero", func(k *KeywordConfig) { k.PrefixLen = 0 }},
		{"pick_top_k zero", func(k *KeywordConfig) { k.PickTopK = 0 }},
		{"temperature zero", func(k *KeywordConfig) { k.DefaultTemperature = 0 }},
		{"rejected temperature negative", func(k *KeywordConfig) { k.RejectedTemperature = -1 }},
		{"rejected score above penalty", func(k *KeywordConfig) { k.RejectedScore = 2000 }},
		{"diversity cap negative", func(k *KeywordConfig) { k.DiversityCap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Keyword)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_BatchConcurrencyZero(t *testing.T) {
	cfg := validConfig()
	cfg.Batch.Concurrency = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero concurrency")
	}
}

func TestValidate_PictureMaxSegmentsZero(t *testing.T) {
	cfg := validConfig()
	cfg.Picture.MaxSegments = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero max_segments")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080, RateLimit: 600},
		Database:  DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
		Redis:     RedisConfig{Addr: "localhost:6379", Key: "mnemonic:selection"},
		Source:    SourceConfig{Kind: SourcePostgres},
		Selection: SelectionConfig{Backend: SelectionMemory},
		Keyword: KeywordConfig{
			PrefixLen:              5,
			PickTopK:               10,
			ConsonantExactWeight:   0.6,
			BigramWeight:           0.8,
			ConsonantOverlapWeight: 0.25,
			VowelOverlapWeight:     0.2,
			RejectPenalty:          1000,
			RejectedScore:          500,
			DefaultTemperature:     1,
			RejectedTemperature:    400,
			DiversityLinear:        0.15,
			DiversityLog:           0.12,
			DiversityCap:           200,
		},
		Picture: PictureConfig{MaxSegments: 10, PlaceholderSource: "standing"},
		Batch:   BatchConfig{Concurrency: 20, WordTimeout: 10 * time.Second},
	}
}
