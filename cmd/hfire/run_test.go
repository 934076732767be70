package main

import (
	"bytes"
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

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePropertyFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	fmdPath := writeFile(t, dir, "fmd.txt",
		"1 ENGLISH 1.0 0.3 0.3 1 0 0 0 0 0 2000 0 0 0 0 0 32 32 32 32 32 32 8000 8000 0.0555 0.01\n")
	wazPath := writeFile(t, dir, "waz.txt", hourRow(2026, 1, 1, 90))
	wspPath := writeFile(t, dir, "wsp.txt", "UNITS MILEPHR\n"+hourRow(2026, 1, 1, 5))
	dfmPath := writeFile(t, dir, "dfm.txt", hourRow(2026, 1, 1, 8))
	herbPath := writeFile(t, dir, "herb.txt", "1 1 100\n")
	woodyPath := writeFile(t, dir, "woody.txt", "1 1 90\n")
	ignitionPath := writeFile(t, dir, "ignitions.txt", "2026 1 1 0 100 200\n")

	cfg := "FUEL_MODEL_FNAME " + fmdPath + "\n" +
		"WIND_AZIMUTH_TYPE FIXED\n" +
		"WIND_AZIMUTH_FIXED_FILE " + wazPath + "\n" +
		"WIND_SPEED_TYPE FIXED\n" +
		"WIND_SPEED_FIXED_FILE " + wspPath + "\n" +
		"DEAD_FUEL_MOIST_TYPE FIXED\n" +
		"DEAD_FUEL_MOIST_FIXED_FILE " + dfmPath + "\n" +
		"LIVE_FUEL_MOIST_TYPE FIXED\n" +
		"LIVE_FUEL_MOIST_HERB_FIXED_FILE " + herbPath + "\n" +
		"LIVE_FUEL_MOIST_WOODY_FIXED_FILE " + woodyPath + "\n" +
		"IGNITION_TYPE FIXED\n" +
		"IGNITION_FIXED_FILE " + ignitionPath + "\n"

	return writeFile(t, dir, "hfire.properties", cfg)
}

func TestRunHfirePrintsAdvancingRadius(t *testing.T) {
	propertyPath := writePropertyFile(t)

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"run", "--config", propertyPath, "--ticks", "3"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d output lines, want 4 (header + 3 ticks):\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "#") {
		t.Errorf("header line = %q, want a leading '#'", lines[0])
	}

	var radii []float64
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) != 6 {
			t.Fatalf("data line %q has %d fields, want 6", line, len(fields))
		}
		var radius float64
		if _, err := fmt.Sscanf(fields[5], "%f", &radius); err != nil {
			t.Fatalf("could not parse radius from %q: %v", fields[5], err)
		}
		radii = append(radii, radius)
	}
	for i := 1; i < len(radii); i++ {
		if radii[i] <= radii[i-1] {
			t.Errorf("radius did not advance monotonically: tick %d radius %v <= tick %d radius %v",
				i, radii[i], i-1, radii[i-1])
		}
	}
}

func TestRunHfireRejectsUnknownFuelModelNum(t *testing.T) {
	propertyPath := writePropertyFile(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", propertyPath, "--fuel_model_num", "42"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a fuel model number absent from the configured file")
	}
}

func TestRunHfireRequiresConfigFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --config is not given")
	}
}
