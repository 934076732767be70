package fuel

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// sampleFMD encodes standard NFFL fuel models 1 (short grass) and 4
// (chaparral) in English units, using representative Rothermel (1972)
// parameter-table values.
const sampleFMD = `# num units depth dead_mx live_mx load1 load10 load100 load1000 loadherb loadwoody sav1 sav10 sav100 sav1000 savherb savwoody density1 density10 density100 density1000 densityherb densitywoody heat_dead heat_live mineral_total mineral_eff
1 ENGLISH 1.0 0.12 1.5 0.034 0 0 0 0 0 3500 109 30 8 1800 1800 32 32 32 32 32 32 8000 8000 0.0555 0.01
4 ENGLISH 6.0 0.20 1.5 0.230 0.184 0.092 0 0.023 0.092 2000 109 30 8 1500 1500 32 32 32 32 32 32 8000 8000 0.0555 0.01
`

func TestLoadFMDFindsModel(t *testing.T) {
	m, err := LoadFMD(strings.NewReader(sampleFMD), 4, "test")
	if err != nil {
		t.Fatal(err)
	}
	if m.Number != 4 {
		t.Fatalf("got model %d", m.Number)
	}
	if m.Depth != 6.0 {
		t.Errorf("depth = %v, want 6.0", m.Depth)
	}
	if m.Dead[0].Load != 0.230 {
		t.Errorf("1-h load = %v, want 0.230", m.Dead[0].Load)
	}
	if m.Live[0].SAV != 1500 {
		t.Errorf("herb sav = %v, want 1500", m.Live[0].SAV)
	}
}

func TestLoadFMDNotFound(t *testing.T) {
	if _, err := LoadFMD(strings.NewReader(sampleFMD), 99, "test"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestListFMDFile(t *testing.T) {
	f, err := newTempFile(t, sampleFMD)
	if err != nil {
		t.Fatal(err)
	}
	models, err := ListFMDFile(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	m, err := LoadFMD(strings.NewReader(sampleFMD), 1, "test")
	if err != nil {
		t.Fatal(err)
	}
	before := m.totalLoadSum()
	if err := m.ToMetric(); err != nil {
		t.Fatal(err)
	}
	if m.Units != Metric {
		t.Fatal("expected Metric after ToMetric")
	}
	if err := m.ToEnglish(); err != nil {
		t.Fatal(err)
	}
	after := m.totalLoadSum()
	if d := before - after; d > 1e-6 || d < -1e-6 {
		t.Errorf("load sum not preserved: %v vs %v", before, after)
	}
}

func TestToEnglishAlreadyEnglish(t *testing.T) {
	m, _ := LoadFMD(strings.NewReader(sampleFMD), 1, "test")
	if err := m.ToEnglish(); err != ErrAlreadyInThatSystem {
		t.Fatalf("expected ErrAlreadyInThatSystem, got %v", err)
	}
}

func TestDumpToStream(t *testing.T) {
	m, _ := LoadFMD(strings.NewReader(sampleFMD), 1, "test")
	var buf bytes.Buffer
	if err := m.DumpToStream(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty dump")
	}
}

func newTempFile(t *testing.T, content string) (string, error) {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "fmd-*.txt")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		return "", err
	}
	f.Close()
	return f.Name(), nil
}
