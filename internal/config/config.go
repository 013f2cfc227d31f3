package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	RedisURL string        // empty: in-process assessment cache
	CacheTTL time.Duration // assessment cache entry lifetime

	AuthSecret string

	// Score-band cut points for placement (see assessment.Bands).
	ScoreBandLow  int
	ScoreBandHigh int

	// TierPolicy is "proceed" (a missing content tier shrinks the test)
	// or "strict" (abort the assessment).
	TierPolicy string

	// Optional YAML file layered over the built-in completion rules.
	RulesFile string

	// Remote graders; empty URLs disable the integration.
	ValidatorURL     string
	ValidatorTimeout time.Duration
	RecognizerURL    string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:         addr,
		PublicURL:        os.Getenv("PUBLIC_URL"),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		RedisURL:         envOr("REDIS_URL", ""),
		CacheTTL:         envDuration("CACHE_TTL", 10*time.Minute),
		AuthSecret:       envOr("AUTH_SECRET", "dev-secret-change-me"),
		ScoreBandLow:     envInt("SCORE_BAND_LOW", 30),
		ScoreBandHigh:    envInt("SCORE_BAND_HIGH", 75),
		TierPolicy:       envOr("TIER_POLICY", "proceed"),
		RulesFile:        envOr("RULES_FILE", ""),
		ValidatorURL:     envOr("VALIDATOR_URL", ""),
		ValidatorTimeout: envDuration("VALIDATOR_TIMEOUT", 5*time.Second),
		RecognizerURL:    envOr("RECOGNIZER_URL", ""),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
