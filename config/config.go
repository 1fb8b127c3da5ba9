package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the alert service.
type Config struct {
	DemoMode   bool
	WebhookURL string

	// NDVI change thresholds (magnitude of drop), strictly ascending.
	NDVIThresholdLow    float64
	NDVIThresholdMedium float64
	NDVIThresholdHigh   float64

	// Minimum patch size to report.
	MinPatchHectares float64
	// Sieve threshold in pixels for connected components.
	MinSizePixels int

	// Max bounding box size in degrees per side (~1 degree is 111 km).
	MaxBboxDegrees float64

	OpenAIAPIKey string
	NASAFirmsKey string
	MapsAPIKey   string

	// Cron spec for re-analyzing watched regions.
	MonitorCron string

	Port int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		DemoMode:            true,
		NDVIThresholdLow:    0.3,
		NDVIThresholdMedium: 0.4,
		NDVIThresholdHigh:   0.5,
		MinPatchHectares:    1.0,
		MinSizePixels:       6,
		MaxBboxDegrees:      1.0,
		MonitorCron:         "0 */6 * * *",
		Port:                8080,
	}

	if v := os.Getenv("DEMO_MODE"); v != "" {
		mode, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid DEMO_MODE: %s", v)
		}
		cfg.DemoMode = mode
	}

	cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.NASAFirmsKey = os.Getenv("NASA_FIRMS_KEY")
	cfg.MapsAPIKey = os.Getenv("MAPS_CREDENTIALS")

	var err error
	if cfg.NDVIThresholdLow, err = floatEnv("NDVI_THRESHOLD_LOW", cfg.NDVIThresholdLow); err != nil {
		return cfg, err
	}
	if cfg.NDVIThresholdMedium, err = floatEnv("NDVI_THRESHOLD_MEDIUM", cfg.NDVIThresholdMedium); err != nil {
		return cfg, err
	}
	if cfg.NDVIThresholdHigh, err = floatEnv("NDVI_THRESHOLD_HIGH", cfg.NDVIThresholdHigh); err != nil {
		return cfg, err
	}
	if !(cfg.NDVIThresholdLow < cfg.NDVIThresholdMedium && cfg.NDVIThresholdMedium < cfg.NDVIThresholdHigh) {
		return cfg, fmt.Errorf("NDVI thresholds must be ascending: %g < %g < %g required",
			cfg.NDVIThresholdLow, cfg.NDVIThresholdMedium, cfg.NDVIThresholdHigh)
	}

	if cfg.MinPatchHectares, err = floatEnv("MIN_PATCH_HECTARES", cfg.MinPatchHectares); err != nil {
		return cfg, err
	}
	if cfg.MinPatchHectares < 0 {
		return cfg, fmt.Errorf("MIN_PATCH_HECTARES must be >= 0")
	}

	if cfg.MaxBboxDegrees, err = floatEnv("MAX_BBOX_DEGREES", cfg.MaxBboxDegrees); err != nil {
		return cfg, err
	}

	if v := os.Getenv("MIN_SIZE_PIXELS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid MIN_SIZE_PIXELS: %s", v)
		}
		cfg.MinSizePixels = n
	}

	if v := os.Getenv("MONITOR_CRON"); v != "" {
		cfg.MonitorCron = v
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", v)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %s", key, v)
	}
	return f, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
