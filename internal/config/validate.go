package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit)
	}

	switch c.Source.Kind {
	case SourcePostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when source.kind is %q", SourcePostgres)
		}
	case SourceFile:
		if c.Source.KeywordFile == "" || c.Source.PictureFile == "" {
			return fmt.Errorf("source.keyword_file and source.picture_file are required when source.kind is %q", SourceFile)
		}
	default:
		return fmt.Errorf("source.kind must be %q or %q (got %q)", SourcePostgres, SourceFile, c.Source.Kind)
	}

	switch c.Selection.Backend {
	case SelectionMemory:
	case SelectionRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when selection.backend is %q", SelectionRedis)
		}
		if c.Redis.Timeout <= 0 {
			return fmt.Errorf("redis.timeout must be > 0 (got %v)", c.Redis.Timeout)
		}
	default:
		return fmt.Errorf("selection.backend must be %q or %q (got %q)", SelectionMemory, SelectionRedis, c.Selection.Backend)
	}

	if err := c.Keyword.validate(); err != nil {
		return fmt.Errorf("keyword: %w", err)
	}

	if c.Picture.MaxSegments <= 0 {
		return fmt.Errorf("picture: max_segments must be > 0 (got %d)", c.Picture.MaxSegments)
	}

	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch: concurrency must be > 0 (got %d)", c.Batch.Concurrency)
	}
	if c.Batch.WordTimeout < 0 {
		return fmt.Errorf("batch: word_timeout must be >= 0 (got %v)", c.Batch.WordTimeout)
	}

	return nil
}

func (k *KeywordConfig) validate() error {
	if k.PrefixLen <= 0 {
		return fmt.Errorf("prefix_len must be > 0 (got %d)", k.PrefixLen)
	}
	if k.PickTopK <= 0 {
		return fmt.Errorf("pick_top_k must be > 0 (got %d)", k.PickTopK)
	}
	if k.DefaultTemperature <= 0 || k.RejectedTemperature <= 0 {
		return fmt.Errorf("temperatures must be > 0 (got %v, %v)", k.DefaultTemperature, k.RejectedTemperature)
	}
	if k.RejectedScore >= k.RejectPenalty {
		return fmt.Errorf("rejected_score (%v) must be below reject_penalty (%v)", k.RejectedScore, k.RejectPenalty)
	}
	if k.DiversityCap < 0 {
		return fmt.Errorf("diversity_cap must be >= 0 (got %d)", k.DiversityCap)
	}
	return nil
}
