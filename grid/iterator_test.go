package grid

import "testing"

func TestRegularCoordinateIterator(t *testing.T) {
	it := NewRegularCoordinateIterator(3, 2, 10.0, 100.0, 1.0, 1.0, false, true)

	if it.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", it.Len())
	}

	want := [][2]float64{
		{10, 100}, {10, 101}, {10, 102},
		{11, 100}, {11, 101}, {11, 102},
	}

	for i, w := range want {
		lat, lon, ok := it.Next()
		if !ok {
			t.Fatalf("Next() exhausted early at index %d", i)
		}
		if lat != w[0] || lon != w[1] {
			t.Errorf("point %d: got (%.1f, %.1f), want (%.1f, %.1f)", i, lat, lon, w[0], w[1])
		}
	}

	if _, _, ok := it.Next(); ok {
		t.Error("expected iterator to be exhausted after all points consumed")
	}

	it.Reset()
	if lat, lon, ok := it.Next(); !ok || lat != 10 || lon != 100 {
		t.Errorf("after Reset, first point = (%.1f, %.1f, %v), want (10, 100, true)", lat, lon, ok)
	}
}

func TestIrregularCoordinateIterator(t *testing.T) {
	lats := []float64{1, 2, 3}
	lons := []float64{10, 20, 30}
	it := NewIrregularCoordinateIterator(lats, lons)

	if it.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", it.Len())
	}

	for i := range lats {
		lat, lon, ok := it.Next()
		if !ok || lat != lats[i] || lon != lons[i] {
			t.Errorf("point %d: got (%.1f, %.1f, %v), want (%.1f, %.1f, true)", i, lat, lon, ok, lats[i], lons[i])
		}
	}

	if _, _, ok := it.Next(); ok {
		t.Error("expected iterator to be exhausted")
	}

	it.Reset()
	if lat, _, ok := it.Next(); !ok || lat != lats[0] {
		t.Error("Reset did not rewind iterator")
	}
}

func TestLatLonGridIterator(t *testing.T) {
	g := &LatLonGrid{
		Ni: 2, Nj: 2,
		La1: 10_000_000, Lo1: 100_000_000,
		La2: 11_000_000, Lo2: 101_000_000,
		Di: 1_000_000, Dj: 1_000_000,
		ScanningMode: 0x40, // jPositive
	}

	it := g.Iterator()
	if it.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", it.Len())
	}

	lats, lons := g.Coordinates()
	for i := 0; i < 4; i++ {
		lat, lon, ok := it.Next()
		if !ok {
			t.Fatalf("Next() exhausted early at index %d", i)
		}
		if lat != lats[i] || lon != lons[i] {
			t.Errorf("point %d: iterator (%.3f, %.3f) != Coordinates (%.3f, %.3f)", i, lat, lon, lats[i], lons[i])
		}
	}
}
