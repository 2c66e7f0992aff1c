// Package config reads the configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config is the configuration of the backend.
type Config struct {
	ListenAddr       string
	APIURL           *url.URL
	DBPath           string
	CORSAllowOrigins string
	EnablePprof      bool

	RecurrenceSweepSchedule string
	BudgetSweepSchedule     string
	SweepOnStartup          bool

	WorkerCount    int
	QueueSize      int
	JobMaxAttempts int
	RetryBaseDelay time.Duration
	JobRetention   time.Duration

	GeminiAPIKey string
	GeminiModel  string
	AlertFrom    string
}

// LoadDotenv loads variables from the given files into the environment.
// Variables that are already set are not overwritten. Missing files are
// ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var err error
	c := Config{
		ListenAddr:       stringValue("LISTEN_ADDR", ":8080"),
		DBPath:           stringValue("DB_PATH", "data/ledgerly.db"),
		CORSAllowOrigins: os.Getenv("CORS_ALLOW_ORIGINS"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      stringValue("GEMINI_MODEL", "gemini-2.5-flash"),
		AlertFrom:        stringValue("ALERT_FROM", "ledgerly <alerts@ledgerly.local>"),
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return Config{}, errors.New("environment variable API_URL must be set")
	}

	c.APIURL, err = url.Parse(apiURL)
	if err != nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL, got %q", apiURL)
	}

	if c.EnablePprof, err = boolValue("ENABLE_PPROF", false); err != nil {
		return Config{}, err
	}

	if c.SweepOnStartup, err = boolValue("SWEEP_ON_STARTUP", false); err != nil {
		return Config{}, err
	}

	if c.RecurrenceSweepSchedule, err = scheduleValue("RECURRENCE_SWEEP_SCHEDULE", "0 0 * * *"); err != nil {
		return Config{}, err
	}

	if c.BudgetSweepSchedule, err = scheduleValue("BUDGET_SWEEP_SCHEDULE", "0 */6 * * *"); err != nil {
		return Config{}, err
	}

	if c.RetryBaseDelay, err = durationValue("RETRY_BASE_DELAY", time.Second); err != nil {
		return Config{}, err
	}

	if c.JobRetention, err = durationValue("JOB_RETENTION", 24*time.Hour); err != nil {
		return Config{}, err
	}

	if c.WorkerCount, err = intValue("WORKER_COUNT", 5); err != nil {
		return Config{}, err
	}

	if c.QueueSize, err = intValue("QUEUE_SIZE", 100); err != nil {
		return Config{}, err
	}

	if c.JobMaxAttempts, err = intValue("JOB_MAX_ATTEMPTS", 3); err != nil {
		return Config{}, err
	}

	return c, nil
}

func stringValue(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func boolValue(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func durationValue(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("environment variable %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

// scheduleValue reads a standard five field cron expression.
func scheduleValue(key, fallback string) (string, error) {
	v := stringValue(key, fallback)
	if _, err := cron.ParseStandard(v); err != nil {
		return "", fmt.Errorf("environment variable %s must be a cron expression, got %q: %w", key, v, err)
	}
	return v, nil
}

func intValue(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return 0, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, v)
	}
	return i, nil
}
