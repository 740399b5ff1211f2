package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	CORS       CORSConfig       `yaml:"cors"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Log        LogConfig        `yaml:"log"`
	Source     SourceConfig     `yaml:"source"`
	Selection  SelectionConfig  `yaml:"selection"`
	Keyword    KeywordConfig    `yaml:"keyword"`
	Picture    PictureConfig    `yaml:"picture"`
	Batch      BatchConfig      `yaml:"batch"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// Source kinds.
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Selection counter backends.
const (
	SelectionMemory = "memory"
	SelectionRedis  = "redis"
)

// ServerConfig holds HTTP server settings. RateLimit is requests per
// minute per client address; zero disables limiting.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"600"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-Id"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds the connection used for shared selection counters.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Key      string        `yaml:"key"      env:"REDIS_KEY"      env-default:"mnemonic:selection"`
	Timeout  time.Duration `yaml:"timeout"  env:"REDIS_TIMEOUT"  env-default:"2s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SourceConfig selects where the keyword dictionary and picture-word
// catalog are read from.
type SourceConfig struct {
	Kind        string `yaml:"kind"         env:"SOURCE_KIND"         env-default:"postgres"`
	KeywordFile string `yaml:"keyword_file" env:"SOURCE_KEYWORD_FILE"`
	PictureFile string `yaml:"picture_file" env:"SOURCE_PICTURE_FILE"`
}

// SelectionConfig selects the selection counter backend.
type SelectionConfig struct {
	Backend string `yaml:"backend" env:"SELECTION_BACKEND" env-default:"memory"`
}

// KeywordConfig holds the keyword matcher tuning. The defaults are the
// empirically tuned production values.
type KeywordConfig struct {
	PrefixLen              int     `yaml:"prefix_len"               env:"KEYWORD_PREFIX_LEN"               env-default:"5"`
	PickTopK               int     `yaml:"pick_top_k"               env:"KEYWORD_PICK_TOP_K"               env-default:"10"`
	ConsonantExactWeight   float64 `yaml:"consonant_exact_weight"   env:"KEYWORD_CONSONANT_EXACT_WEIGHT"   env-default:"0.6"`
	BigramWeight           float64 `yaml:"bigram_weight"            env:"KEYWORD_BIGRAM_WEIGHT"            env-default:"0.8"`
	ConsonantOverlapWeight float64 `yaml:"consonant_overlap_weight" env:"KEYWORD_CONSONANT_OVERLAP_WEIGHT" env-default:"0.25"`
	VowelOverlapWeight     float64 `yaml:"vowel_overlap_weight"     env:"KEYWORD_VOWEL_OVERLAP_WEIGHT"     env-default:"0.2"`
	RejectPenalty          float64 `yaml:"reject_penalty"           env:"KEYWORD_REJECT_PENALTY"           env-default:"1000"`
	RejectedScore          float64 `yaml:"rejected_score"           env:"KEYWORD_REJECTED_SCORE"           env-default:"500"`
	DefaultTemperature     float64 `yaml:"default_temperature"      env:"KEYWORD_DEFAULT_TEMPERATURE"      env-default:"1.0"`
	RejectedTemperature    float64 `yaml:"rejected_temperature"     env:"KEYWORD_REJECTED_TEMPERATURE"     env-default:"400"`
	DiversityLinear        float64 `yaml:"diversity_linear"         env:"KEYWORD_DIVERSITY_LINEAR"         env-default:"0.15"`
	DiversityLog           float64 `yaml:"diversity_log"            env:"KEYWORD_DIVERSITY_LOG"            env-default:"0.12"`
	DiversityCap           int64   `yaml:"diversity_cap"            env:"KEYWORD_DIVERSITY_CAP"            env-default:"200"`
}

// PictureConfig holds the picture-word matcher settings.
type PictureConfig struct {
	MaxSegments       int    `yaml:"max_segments"       env:"PICTURE_MAX_SEGMENTS"       env-default:"10"`
	PlaceholderSource string `yaml:"placeholder_source" env:"PICTURE_PLACEHOLDER_SOURCE" env-default:"standing"`
	PlaceholderTarget string `yaml:"placeholder_target" env:"PICTURE_PLACEHOLDER_TARGET" env-default:"стоящий"`
}

// BatchConfig holds batch matching settings.
type BatchConfig struct {
	Concurrency int           `yaml:"concurrency"  env:"BATCH_CONCURRENCY"  env-default:"20"`
	WordTimeout time.Duration `yaml:"word_timeout" env:"BATCH_WORD_TIMEOUT" env-default:"10s"`
}

// MigrationsConfig points at the goose migrations directory.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"MIGRATIONS_DIR" env-default:"./migrations"`
}
