package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TargetFPS != 60 {
		t.Errorf("TargetFPS = %d, want 60", cfg.TargetFPS)
	}
	if cfg.LEDCount != 150 {
		t.Errorf("LEDCount = %d, want 150", cfg.LEDCount)
	}
	if cfg.MasterBrightness != 255 {
		t.Errorf("MasterBrightness = %d, want 255", cfg.MasterBrightness)
	}
	if cfg.OSC.InputPort != 9000 {
		t.Errorf("OSC.InputPort = %d, want 9000", cfg.OSC.InputPort)
	}
	if cfg.OSC.OutputAddress != "/light/serial" {
		t.Errorf("OSC.OutputAddress = %q, want /light/serial", cfg.OSC.OutputAddress)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want info", cfg.Logger.Level)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("LEDSHOW_TARGET_FPS", "120")
	t.Setenv("LEDSHOW_LED_COUNT", "300")
	t.Setenv("LEDSHOW_MASTER_BRIGHTNESS", "128")
	t.Setenv("LEDSHOW_OSC_INPUT_PORT", "9100")
	t.Setenv("LEDSHOW_LOGGER_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TargetFPS != 120 {
		t.Errorf("TargetFPS = %d, want 120", cfg.TargetFPS)
	}
	if cfg.LEDCount != 300 {
		t.Errorf("LEDCount = %d, want 300", cfg.LEDCount)
	}
	if cfg.MasterBrightness != 128 {
		t.Errorf("MasterBrightness = %d, want 128", cfg.MasterBrightness)
	}
	if cfg.OSC.InputPort != 9100 {
		t.Errorf("OSC.InputPort = %d, want 9100", cfg.OSC.InputPort)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want debug", cfg.Logger.Level)
	}
}
