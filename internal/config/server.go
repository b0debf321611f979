package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Server holds the API process settings, read from the environment.
type Server struct {
	Port           string
	Env            string
	ScenarioDir    string
	SourcesDir     string
	AllowedOrigins []string
	ForecastURL    string
	ForecastAPIKey string
	ForecastTTL    time.Duration
	ResultTTL      time.Duration
	LogLevel       string
}

// Production reports whether API_ENV is "production".
func (s Server) Production() bool {
	return s.Env == "production"
}

// ServerFromEnv reads API_PORT, API_ENV, SCENARIO_DIR, SOURCES_DIR,
// CORS_ALLOWED_ORIGINS (comma separated), FORECAST_URL, FORECAST_API_KEY,
// FORECAST_CACHE_TTL, RESULT_TTL and LOG_LEVEL.
func ServerFromEnv() (Server, error) {
	s := Server{
		Port:           envOr("API_PORT", "8080"),
		Env:            envOr("API_ENV", "development"),
		ScenarioDir:    envOr("SCENARIO_DIR", "./examples/scenarios"),
		SourcesDir:     envOr("SOURCES_DIR", "./examples/sources"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ForecastURL:    os.Getenv("FORECAST_URL"),
		ForecastAPIKey: os.Getenv("FORECAST_API_KEY"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
	}
	var err error
	if s.ForecastTTL, err = durationEnv("FORECAST_CACHE_TTL", time.Hour); err != nil {
		return Server{}, err
	}
	if s.ResultTTL, err = durationEnv("RESULT_TTL", 24*time.Hour); err != nil {
		return Server{}, err
	}
	return s, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
