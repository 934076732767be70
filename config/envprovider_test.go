package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func hourRow(year, month, day int, val float64) string {
	fields := []string{fmt.Sprint(year), fmt.Sprint(month), fmt.Sprint(day)}
	for h := 0; h < 24; h++ {
		fields = append(fields, fmt.Sprint(val))
	}
	return strings.Join(fields, " ") + "\n"
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnvProviderBuildsAllFixedStrategiesAndReads(t *testing.T) {
	dir := t.TempDir()
	wazPath := writeTestFile(t, dir, "waz.txt", hourRow(2026, 1, 1, 90))
	wspPath := writeTestFile(t, dir, "wsp.txt", "UNITS MILEPHR\n"+hourRow(2026, 1, 1, 5))
	dfmPath := writeTestFile(t, dir, "dfm.txt", hourRow(2026, 1, 1, 8))
	herbPath := writeTestFile(t, dir, "herb.txt", "1 1 100\n")
	woodyPath := writeTestFile(t, dir, "woody.txt", "1 1 90\n")

	cfg := "WIND_AZIMUTH_TYPE FIXED\n" +
		"WIND_AZIMUTH_FIXED_FILE " + wazPath + "\n" +
		"WIND_SPEED_TYPE FIXED\n" +
		"WIND_SPEED_FIXED_FILE " + wspPath + "\n" +
		"DEAD_FUEL_MOIST_TYPE FIXED\n" +
		"DEAD_FUEL_MOIST_FIXED_FILE " + dfmPath + "\n" +
		"LIVE_FUEL_MOIST_TYPE FIXED\n" +
		"LIVE_FUEL_MOIST_HERB_FIXED_FILE " + herbPath + "\n" +
		"LIVE_FUEL_MOIST_WOODY_FIXED_FILE " + woodyPath + "\n" +
		"IGNITION_TYPE FIXED\n" +
		"IGNITION_FIXED_FILE " + writeTestFile(t, dir, "ignitions.txt", "2026 1 1 13 100 200\n") + "\n"

	store, err := Read(strings.NewReader(cfg), "test")
	if err != nil {
		t.Fatal(err)
	}

	provider, err := EnvProvider(store)
	if err != nil {
		t.Fatal(err)
	}
	if provider.SantaAna != nil {
		t.Error("expected no Santa Ana override when unconfigured")
	}

	reading, err := provider.Get(2026, 1, 1, 12, 0, 0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if reading.WindAzDeg != 90 {
		t.Errorf("WindAzDeg = %v, want 90", reading.WindAzDeg)
	}
	if reading.DeadFM10h <= 0 {
		t.Errorf("DeadFM10h = %v, want > 0", reading.DeadFM10h)
	}
	if reading.LiveFMHerb <= 0 || reading.LiveFMWoody <= 0 {
		t.Errorf("live fuel moisture not populated: herb=%v woody=%v", reading.LiveFMHerb, reading.LiveFMWoody)
	}

	occurred, err := provider.Ignition.Occurs(2026, 1, 1, 13)
	if err != nil {
		t.Fatal(err)
	}
	if !occurred {
		t.Fatal("expected the configured ignition trigger to fire")
	}
	x, y, err := provider.Ignition.Location()
	if err != nil {
		t.Fatal(err)
	}
	if x != 100 || y != 200 {
		t.Errorf("ignition location = (%v,%v), want (100,200)", x, y)
	}
}

func TestEnvProviderMissingRequiredFileIsConfigError(t *testing.T) {
	store, err := Read(strings.NewReader("WIND_AZIMUTH_TYPE FIXED\n"), "test")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EnvProvider(store); err == nil {
		t.Fatal("expected a configuration error for a missing required file path")
	}
}

func TestRandomInitUsesLiteralSeedWhenConfigured(t *testing.T) {
	store, err := Read(strings.NewReader("SIMULATION_RAND_NUM_SEED 1234\n"), "test")
	if err != nil {
		t.Fatal(err)
	}
	if row := RandomInit(store); row != -1 {
		t.Errorf("RandomInit with a literal seed returned row %d, want -1", row)
	}
}
