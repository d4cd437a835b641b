package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment knobs. Base URLs default to a local server
// when unset.
type Config struct {
	HTTPBaseURL        string
	WSBaseURL          string
	StateTimeout       time.Duration
	AbortRedirectDelay time.Duration
}

func Load() Config {
	_ = godotenv.Load() // .env is optional

	return Config{
		HTTPBaseURL:        getString("GAME28_HTTP_BASE_URL", "http://localhost:8000"),
		WSBaseURL:          getString("GAME28_WS_BASE_URL", "ws://localhost:8000"),
		StateTimeout:       getMillis("GAME28_STATE_TIMEOUT_MS", 2000),
		AbortRedirectDelay: getMillis("GAME28_ABORT_REDIRECT_MS", 200),
	}
}

func getString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getMillis(name string, fallback int) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return time.Duration(fallback) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
