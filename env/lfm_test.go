package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/units"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLfmFixedAdvancesSequentiallyAndResetsOnYearRollover(t *testing.T) {
	herbPath := writeFile(t, "herb.txt", "1 1 100\n1 15 150\n")
	woodyPath := writeFile(t, "woody.txt", "1 1 90\n1 15 120\n")
	l := NewLfmFixed(herbPath, woodyPath)

	herb, woody, err := l.Get(2026, 1, 1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !units.FloatEquals(herb, 1.0) || !units.FloatEquals(woody, 0.9) {
		t.Errorf("day 1: herb=%v woody=%v, want 1.0, 0.9", herb, woody)
	}

	herb, woody, err = l.Get(2026, 1, 10, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !units.FloatEquals(herb, 1.0) {
		t.Errorf("day 10 (before next record): herb=%v, want unchanged 1.0", herb)
	}

	herb, woody, err = l.Get(2026, 1, 15, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !units.FloatEquals(herb, 1.5) || !units.FloatEquals(woody, 1.2) {
		t.Errorf("day 15: herb=%v woody=%v, want 1.5, 1.2", herb, woody)
	}

	// Year rollover resets the cursor to the start of the series.
	herb, _, err = l.Get(2027, 1, 1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !units.FloatEquals(herb, 1.0) {
		t.Errorf("after year rollover: herb=%v, want reset to 1.0", herb)
	}
}

func TestLfmRandhDeterministicForFixedSeed(t *testing.T) {
	herbPath := writeFile(t, "herb_hist.txt", "ANNMEAN 90\nANNSTDEV 15\n1 1 100 20\n1 15 150 25\n")
	woodyPath := writeFile(t, "woody_hist.txt", "ANNMEAN 80\nANNSTDEV 10\n1 1 90 18\n1 15 120 22\n")

	draw := func() []float64 {
		rng := prng.New(777)
		l := NewLfmRandh(herbPath, woodyPath, rng)
		var seq []float64
		for _, day := range []int{1, 5, 15, 20} {
			herb, woody, err := l.Get(2026, 1, day, 12, 0, 0)
			if err != nil {
				t.Fatal(err)
			}
			seq = append(seq, herb, woody)
		}
		return seq
	}

	seq1 := draw()
	seq2 := draw()
	for i := range seq1 {
		if seq1[i] != seq2[i] {
			t.Fatalf("index %d differs between runs with the same seed: %v vs %v", i, seq1[i], seq2[i])
		}
	}
}
