package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/wind"
)

func TestSantaAnaYearRolloverClearsBothFlagAndCountdown(t *testing.T) {
	// freqPerYear 0 guarantees the fresh-occurrence draw after the
	// rollover never fires, isolating the rollover-clearing behavior.
	s := NewSantaAna(0, 100, 5, "", "", "", "", 0.02, 0.02, wind.AB79, prng.New(1))
	s.lastYear, s.haveYear = 2026, true
	s.active, s.remainingDays = true, 3
	s.lastMonth, s.lastDay, s.haveDay = 6, 15, true

	now, err := s.IsNow(2027, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if now {
		t.Error("expected no event on a fresh year with zero frequency")
	}
	if s.active {
		t.Error("expected the active flag cleared on year rollover")
	}
	if s.remainingDays != 0 {
		t.Errorf("remainingDays = %d, want 0 after rollover", s.remainingDays)
	}
}

func TestSantaAnaEventLastsConfiguredDuration(t *testing.T) {
	// freqPerYear == daysInSeason gives a daily probability of 1.0: the
	// uniform draw (always < 1) guarantees occurrence on the first
	// untriggered day.
	s := NewSantaAna(365, 365, 3, "", "", "", "", 0.02, 0.02, wind.AB79, prng.New(5))

	for day := 1; day <= 3; day++ {
		now, err := s.IsNow(2026, 1, day)
		if err != nil {
			t.Fatal(err)
		}
		if !now {
			t.Fatalf("day %d: expected event active", day)
		}
	}
	if s.active {
		t.Error("expected the event to end after its configured 3-day duration")
	}
}

func TestSantaAnaIsNowIdempotentWithinSameDay(t *testing.T) {
	s := NewSantaAna(365, 365, 3, "", "", "", "", 0.02, 0.02, wind.AB79, prng.New(9))
	now1, err := s.IsNow(2026, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	now2, err := s.IsNow(2026, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if now1 != now2 {
		t.Errorf("repeated same-day calls disagreed: %v vs %v", now1, now2)
	}
}

func TestSantaAnaGetEnvReadsPairedTablesByRow(t *testing.T) {
	wazPath := filepath.Join(t.TempDir(), "sa_waz.txt")
	wspPath := filepath.Join(t.TempDir(), "sa_wsp.txt")
	dfmPath := filepath.Join(t.TempDir(), "sa_dfm.txt")
	if err := os.WriteFile(wazPath, []byte(buildHourRow(2026, 1, 1, 45)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wspPath, []byte("UNITS MILEPHR\n"+buildHourRow(2026, 1, 1, 10)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dfmPath, []byte(buildHourRow(2026, 1, 1, 6)), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewSantaAna(365, 365, 3, "", wazPath, wspPath, dfmPath, 0.02, 0.02, wind.NOWAF, prng.New(3))

	env, err := s.GetEnv(2026, 1, 1, 10, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if env.WindAzDeg != 45 {
		t.Errorf("WindAzDeg = %v, want 45", env.WindAzDeg)
	}
	if env.WindSpeedMps <= 0 {
		t.Errorf("WindSpeedMps = %v, want > 0", env.WindSpeedMps)
	}
	if env.DeadFM10h <= 0 || env.DeadFM10h >= 1 {
		t.Errorf("DeadFM10h = %v, want a small fraction", env.DeadFM10h)
	}
}
