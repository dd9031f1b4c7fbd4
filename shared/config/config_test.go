package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if cfg.Winch.ManualAngularSpeedDeg != 200 || cfg.Winch.NominalStepSeconds != 0.1 {
		t.Fatalf("tuning padrão inesperado: %+v", cfg.Winch)
	}
}

func TestLoadFromKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"tick_rate_hz": 10, "winch": {"max_shaft_depth": 8}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadFrom(path)
	if cfg.TickRateHz != 10 {
		t.Errorf("TickRateHz = %d, want 10", cfg.TickRateHz)
	}
	if cfg.Winch.MaxShaftDepth != 8 {
		t.Errorf("MaxShaftDepth = %v, want 8", cfg.Winch.MaxShaftDepth)
	}
	if cfg.Winch.DepthLerpRate != 50 {
		t.Errorf("DepthLerpRate = %v, want padrão 50", cfg.Winch.DepthLerpRate)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"tick_rate_hz": `), 0644); err != nil {
		t.Fatal(err)
	}
	if cfg := LoadFrom(path); cfg.TickRateHz != DefaultConfig().TickRateHz {
		t.Errorf("JSON inválido deveria devolver o padrão")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.PlayerID = "ana"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if got := LoadFrom(path); got.PlayerID != "ana" || len(got.Winches) != len(cfg.Winches) {
		t.Fatalf("config relida difere: %+v", got)
	}
}
