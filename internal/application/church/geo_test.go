package church

import (
	"math"
	"testing"
)

func TestHaversineKm_OneDegreeAtEquator(t *testing.T) {
	t.Parallel()

	got := haversineKm(0, 0, 0, 1)
	if math.Abs(got-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km, got %.3f", got)
	}
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	t.Parallel()

	if got := haversineKm(40.7, -74.0, 40.7, -74.0); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := haversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	b := haversineKm(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", a, b)
	}
	// NYC to LA is roughly 3936 km
	if math.Abs(a-3936) > 20 {
		t.Fatalf("expected ~3936 km, got %.1f", a)
	}
}
