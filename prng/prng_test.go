package prng

import "testing"

func TestDeterministicSequence(t *testing.T) {
	g1 := New(12345)
	g2 := New(12345)
	for i := 0; i < 50; i++ {
		if a, b := g1.Randu(0, 360), g2.Randu(0, 360); a != b {
			t.Fatalf("randu diverged at %d: %v != %v", i, a, b)
		}
		if a, b := g1.Randi(100), g2.Randi(100); a != b {
			t.Fatalf("randi diverged at %d: %v != %v", i, a, b)
		}
		if a, b := g1.Randg(0, 1), g2.Randg(0, 1); a != b {
			t.Fatalf("randg diverged at %d: %v != %v", i, a, b)
		}
	}
}

func TestRanduBounds(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.Randu(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("randu out of bounds: %v", v)
		}
	}
}

func TestSeedTableShape(t *testing.T) {
	if len(seedTable) != SeedTableRows {
		t.Fatalf("seed table has %d rows, want %d", len(seedTable), SeedTableRows)
	}
	// Distinct rows should (overwhelmingly) produce distinct seeds.
	seen := map[[2]uint32]bool{}
	dups := 0
	for _, row := range seedTable {
		if seen[row] {
			dups++
		}
		seen[row] = true
	}
	if dups > 1 {
		t.Errorf("unexpectedly many duplicate seed rows: %d", dups)
	}
}

func TestInitFromTableIsReproducible(t *testing.T) {
	InitFromTable(7)
	a := Randu(0, 1)
	InitFromTable(7)
	b := Randu(0, 1)
	if a != b {
		t.Errorf("InitFromTable(7) not reproducible: %v != %v", a, b)
	}
}
