package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("AI credential is not configured")

type AppConfig struct {
	Port     string
	DBPath   string
	LogLevel string
	LogFile  string

	AIProvider           string
	AIGatewayURL         string
	AIAPIKey             string
	AIModel              string
	AITimeout            time.Duration
	AISoilTemperature    float64
	AIInsightTemperature float64
	AISoilMaxTokens      int

	CORSAllowOrigins []string
	BodyLimit        string
	RequireUser      bool
}

// Load reads an optional .env file and then the process environment.
// It never fails; call Validate before wiring the inference client.
func Load() AppConfig {
	// missing .env is normal outside local development
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from any key lookup, e.g. a map in tests.
func FromLookup(lookup func(string) (string, bool)) AppConfig {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
	getFloat := func(k string, def float64) float64 {
		if f, err := strconv.ParseFloat(get(k, ""), 64); err == nil {
			return f
		}
		return def
	}
	getInt := func(k string, def int) int {
		if n, err := strconv.Atoi(get(k, "")); err == nil {
			return n
		}
		return def
	}

	timeout, err := time.ParseDuration(get("AI_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		timeout = 60 * time.Second
	}
	var origins []string
	for _, o := range strings.Split(get("CORS_ALLOW_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return AppConfig{
		Port:     get("PORT", "8080"),
		DBPath:   get("DB_PATH", "agrisight.db"),
		LogLevel: get("LOG_LEVEL", "info"),
		LogFile:  get("LOG_FILE", ""),

		AIProvider:           strings.ToLower(get("AI_PROVIDER", "gateway")),
		AIGatewayURL:         get("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev"),
		AIAPIKey:             get("AI_API_KEY", get("LOVABLE_API_KEY", "")),
		AIModel:              get("AI_MODEL", "google/gemini-2.5-flash"),
		AITimeout:            timeout,
		AISoilTemperature:    getFloat("AI_SOIL_TEMPERATURE", 0.4),
		AIInsightTemperature: getFloat("AI_INSIGHT_TEMPERATURE", 0.7),
		AISoilMaxTokens:      getInt("AI_SOIL_MAX_TOKENS", 1000),

		CORSAllowOrigins: origins,
		BodyLimit:        get("BODY_LIMIT", "12M"),
		RequireUser:      get("REQUIRE_USER", "false") == "true",
	}
}

// Validate reports settings the service cannot start without.
func (c AppConfig) Validate() error {
	if c.AIProvider != "mock" && strings.TrimSpace(c.AIAPIKey) == "" {
		return fmt.Errorf("%w: set AI_API_KEY", ErrMissingCredential)
	}
	if c.AISoilTemperature < 0 || c.AISoilTemperature > 2 || c.AIInsightTemperature < 0 || c.AIInsightTemperature > 2 {
		return errors.New("AI temperatures must be within [0,2]")
	}
	return nil
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.AIAPIKey != "" {
		c.AIAPIKey = "***"
	}
	return c
}
