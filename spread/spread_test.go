package spread

import (
	"strings"
	"testing"

	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/units"
)

// nfflModels encodes the standard NFFL fuel models 1 (short grass), 2
// (timber grass & understory), and 4 (chaparral), English units,
// Rothermel (1972)/Anderson (1982) reference parameter values.
const nfflModels = `# num units depth dead_mx live_mx load1 load10 load100 load1000 loadherb loadwoody sav1 sav10 sav100 sav1000 savherb savwoody density1 density10 density100 density1000 densityherb densitywoody heat_dead heat_live mineral_total mineral_eff
1 ENGLISH 1.0 0.12 1.5 0.034 0 0 0 0 0 3500 109 30 8 1800 1800 32 32 32 32 32 32 8000 8000 0.0555 0.01
2 ENGLISH 1.0 0.15 1.5 0.092 0.046 0.023 0 0.023 0 3000 109 30 8 1500 1500 32 32 32 32 32 32 8000 8000 0.0555 0.01
4 ENGLISH 6.0 0.20 1.5 0.230 0.184 0.092 0 0.023 0.092 2000 109 30 8 1500 1500 32 32 32 32 32 32 8000 8000 0.0555 0.01
`

func loadModel(t *testing.T, num int) *fuel.Model {
	t.Helper()
	m, err := fuel.LoadFMD(strings.NewReader(nfflModels), num, "test")
	if err != nil {
		t.Fatalf("LoadFMD(%d): %v", num, err)
	}
	return m
}

func TestSetFuelBedThenSpreadNoWindNoSlope(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatalf("SetFuelBed: %v", err)
	}
	if m.State != fuel.BedSet {
		t.Fatalf("state = %v, want BedSet", m.State)
	}
	if err := SpreadNoWindNoSlope(m, 0.06, 0.07, 0.08, 1.50, 1.50); err != nil {
		t.Fatalf("SpreadNoWindNoSlope: %v", err)
	}
	if m.State != fuel.NoWindNoSlopeSolved {
		t.Fatalf("state = %v, want NoWindNoSlopeSolved", m.State)
	}
	if m.Results.Ros0 < 0 {
		t.Fatalf("ros_0 = %v, want >= 0", m.Results.Ros0)
	}
}

func TestSetFuelBedRejectsCustomBurnupVariant(t *testing.T) {
	m := loadModel(t, 1)
	m.Variant = fuel.CustomBurnup
	if err := SetFuelBed(m); err == nil {
		t.Fatal("expected error for CustomBurnup variant")
	}
}

func TestSetFuelBedRejectsZeroDepth(t *testing.T) {
	m := loadModel(t, 1)
	m.Depth = 0
	if err := SetFuelBed(m); err == nil {
		t.Fatal("expected error for zero depth")
	}
}

func TestSpreadNoWindNoSlopeRequiresBedSet(t *testing.T) {
	m := loadModel(t, 1)
	if err := SpreadNoWindNoSlope(m, 0.06, 0.07, 0.08, 1.5, 1.5); err == nil {
		t.Fatal("expected error before SetFuelBed")
	}
}

func TestSpreadNoWindNoSlopeRejectsNegativeMoisture(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, -0.1, 0.07, 0.08, 1.5, 1.5); err == nil {
		t.Fatal("expected error for negative moisture")
	}
}

func TestSpreadNoWindNoSlopeBelowThreshold(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	// Moisture at or beyond the extinction point drives reaction intensity,
	// and therefore ros_0, to zero.
	err := SpreadNoWindNoSlope(m, 5.0, 5.0, 5.0, 5.0, 5.0)
	if err != ErrBelowSpreadThreshold {
		t.Fatalf("err = %v, want ErrBelowSpreadThreshold", err)
	}
	if m.Results.Ros0 != 0 {
		t.Fatalf("ros_0 = %v, want 0", m.Results.Ros0)
	}
}

// TestScenario1NoWindNoSlope grounds concrete scenario 1: standard fuel model 1,
// no wind, no slope, 6% dead 1-h moisture. Expects ros_max == ros_0 and
// az_max == 0 — the universal-invariant equality case (no wind, slope, or
// aspect contribution).
func TestScenario1NoWindNoSlope(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.06, 0.07, 0.08, 1.50, 1.50); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m, 0, 0, 0, units.NoAspect, 0.5); err != nil {
		t.Fatal(err)
	}
	if !units.FloatEquals(m.Results.RosMax, m.Results.Ros0) {
		t.Errorf("ros_max = %v, want == ros_0 (%v)", m.Results.RosMax, m.Results.Ros0)
	}
	if m.Results.AzMax != 0 {
		t.Errorf("az_max = %v, want 0", m.Results.AzMax)
	}
}

// TestScenario2Wind grounds concrete scenario 2: fuel model 1, 5 m/s wind
// at azimuth 90 degrees, flat. Expects ros_max greater than 4*ros_0 and
// az_max within 1 degree of the wind azimuth.
func TestScenario2Wind(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.06, 0.07, 0.08, 1.50, 1.50); err != nil {
		t.Fatal(err)
	}
	windFpm := units.MpsToFpm(5.0)
	if err := SpreadWindSlopeMax(m, windFpm, 90, 0, units.NoAspect, 0.5); err != nil {
		t.Fatal(err)
	}
	if m.Results.RosMax <= 4*m.Results.Ros0 {
		t.Errorf("ros_max = %v, want > 4*ros_0 = %v", m.Results.RosMax, 4*m.Results.Ros0)
	}
	if d := m.Results.AzMax - 90; d > 1 || d < -1 {
		t.Errorf("az_max = %v, want ~= 90", m.Results.AzMax)
	}
}

// TestScenario3Slope grounds concrete scenario 3: fuel model 4 (chaparral),
// strong slope, no wind. Expects az_max upslope (aspect+180 mod 360) and
// ros_max > ros_0.
func TestScenario3Slope(t *testing.T) {
	m := loadModel(t, 4)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.08, 0.09, 0.10, 0.60, 0.90); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m, 0, 0, 60, 180, 0.5); err != nil {
		t.Fatal(err)
	}
	if m.Results.RosMax <= m.Results.Ros0 {
		t.Errorf("ros_max = %v, want > ros_0 = %v", m.Results.RosMax, m.Results.Ros0)
	}
	az := m.Results.AzMax
	if az > 1 && az < 359 {
		t.Errorf("az_max = %v, want ~= 0 (upslope)", az)
	}
}

// TestScenario4Opposing grounds concrete scenario 4: wind and slope
// opposing. Fuel model 2, wind 3 m/s at azimuth 0 degrees, slope 40% with
// aspect 0 degrees (upslope direction 180 degrees). The two drivers are
// collinear, so the resultant points along the stronger one. Expects
// ros_max > ros_0 and az_max within [0,360).
func TestScenario4Opposing(t *testing.T) {
	m := loadModel(t, 2)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.07, 0.08, 0.09, 0.70, 1.0); err != nil {
		t.Fatal(err)
	}
	windFpm := units.MpsToFpm(3.0)
	if err := SpreadWindSlopeMax(m, windFpm, 0, 40, 0, 0.5); err != nil {
		t.Fatal(err)
	}
	if m.Results.RosMax <= m.Results.Ros0 {
		t.Errorf("ros_max = %v, want > ros_0 = %v", m.Results.RosMax, m.Results.Ros0)
	}
	az := m.Results.AzMax
	if az < 0 || az >= 360 {
		t.Errorf("az_max = %v out of [0,360)", az)
	}
}

func TestRosMaxGreaterOrEqualRos0(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.06, 0.07, 0.08, 1.5, 1.5); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m, units.MpsToFpm(2), 45, 10, 90, 0); err != nil {
		t.Fatal(err)
	}
	if m.Results.RosMax < m.Results.Ros0 {
		t.Errorf("ros_max = %v < ros_0 = %v", m.Results.RosMax, m.Results.Ros0)
	}
	if m.Results.AzMax < 0 || m.Results.AzMax >= 360 {
		t.Errorf("az_max = %v out of [0,360)", m.Results.AzMax)
	}
}

func TestSpreadWindSlopeMaxRequiresNoWindNoSlopeSolved(t *testing.T) {
	m := loadModel(t, 1)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m, 0, 0, 0, units.NoAspect, 0); err == nil {
		t.Fatal("expected error before SpreadNoWindNoSlope")
	}
}

func TestSpreadWindSlopeMaxRejectsSlopeWithoutAspect(t *testing.T) {
	m := loadModel(t, 4)
	if err := SetFuelBed(m); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m, 0.08, 0.09, 0.10, 0.6, 0.9); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m, 0, 0, 60, units.NoAspect, 0); err == nil {
		t.Fatal("expected error for slope without aspect")
	}
}

func TestEafDoesNotAffectRosMax(t *testing.T) {
	m1 := loadModel(t, 1)
	if err := SetFuelBed(m1); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m1, 0.06, 0.07, 0.08, 1.5, 1.5); err != nil {
		t.Fatal(err)
	}
	windFpm := units.MpsToFpm(4)
	if err := SpreadWindSlopeMax(m1, windFpm, 45, 20, 90, 0.1); err != nil {
		t.Fatal(err)
	}
	rosLowEaf := m1.Results.RosMax

	m2 := loadModel(t, 1)
	if err := SetFuelBed(m2); err != nil {
		t.Fatal(err)
	}
	if err := SpreadNoWindNoSlope(m2, 0.06, 0.07, 0.08, 1.5, 1.5); err != nil {
		t.Fatal(err)
	}
	if err := SpreadWindSlopeMax(m2, windFpm, 45, 20, 90, 0.9); err != nil {
		t.Fatal(err)
	}
	rosHighEaf := m2.Results.RosMax

	if !units.FloatEquals(rosLowEaf, rosHighEaf) {
		t.Errorf("ros_max varied with eaf: %v vs %v", rosLowEaf, rosHighEaf)
	}
}
