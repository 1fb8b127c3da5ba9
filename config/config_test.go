package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DemoMode {
		t.Error("demo mode should default to true")
	}
	if cfg.NDVIThresholdLow != 0.3 || cfg.NDVIThresholdMedium != 0.4 || cfg.NDVIThresholdHigh != 0.5 {
		t.Errorf("default thresholds: %g/%g/%g", cfg.NDVIThresholdLow, cfg.NDVIThresholdMedium, cfg.NDVIThresholdHigh)
	}
	if cfg.MinSizePixels != 6 {
		t.Errorf("default min size pixels: got %d, want 6", cfg.MinSizePixels)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Port)
	}
	if cfg.ListenAddr() != ":8080" {
		t.Errorf("listen addr: got %s", cfg.ListenAddr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEMO_MODE", "false")
	t.Setenv("NDVI_THRESHOLD_LOW", "0.2")
	t.Setenv("MIN_PATCH_HECTARES", "2.5")
	t.Setenv("MIN_SIZE_PIXELS", "10")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DemoMode {
		t.Error("DEMO_MODE=false not applied")
	}
	if cfg.NDVIThresholdLow != 0.2 {
		t.Errorf("threshold override: got %g, want 0.2", cfg.NDVIThresholdLow)
	}
	if cfg.MinPatchHectares != 2.5 {
		t.Errorf("min patch override: got %g, want 2.5", cfg.MinPatchHectares)
	}
	if cfg.MinSizePixels != 10 {
		t.Errorf("min size override: got %d, want 10", cfg.MinSizePixels)
	}
	if cfg.Port != 9000 {
		t.Errorf("port override: got %d, want 9000", cfg.Port)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("NDVI_THRESHOLD_LOW", "0.5")
	t.Setenv("NDVI_THRESHOLD_MEDIUM", "0.4")
	t.Setenv("NDVI_THRESHOLD_HIGH", "0.3")
	if _, err := Load(); err == nil {
		t.Error("descending thresholds accepted")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("invalid PORT accepted")
	}
}

func TestLoadRejectsNegativeMinPatch(t *testing.T) {
	t.Setenv("MIN_PATCH_HECTARES", "-1")
	if _, err := Load(); err == nil {
		t.Error("negative MIN_PATCH_HECTARES accepted")
	}
}
