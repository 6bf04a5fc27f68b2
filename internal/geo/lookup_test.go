package geo

import (
	"math"
	"testing"
)

func TestCountries_TableIntegrity(t *testing.T) {
	all := Countries()
	if len(all) != 51 {
		t.Fatalf("expected 51 countries, got %d", len(all))
	}

	seen := make(map[string]bool)
	for _, c := range all {
		if c.Name == "" || len(c.ISO2) != 2 {
			t.Errorf("malformed entry: %+v", c)
		}
		if seen[c.ISO2] {
			t.Errorf("duplicate ISO2 code %s", c.ISO2)
		}
		seen[c.ISO2] = true
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			t.Errorf("coordinates out of range for %s", c.Name)
		}
	}

	// Returned slice is a copy
	all[0].Name = "Mutated"
	if Countries()[0].Name == "Mutated" {
		t.Error("Countries() must not expose the backing table")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Ukraine", "UA", true},
		{"  united   states ", "US", true},
		{"south-korea", "KR", true},
		{"gb", "GB", true},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.query)
		if ok != tt.ok {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.query, ok, tt.ok)
			continue
		}
		if ok && got.ISO2 != tt.want {
			t.Errorf("Lookup(%q) = %s, want %s", tt.query, got.ISO2, tt.want)
		}
	}
}

func TestNearest(t *testing.T) {
	c, ok := Nearest(48.0, 31.0)
	if !ok || c.Name != "Ukraine" {
		t.Errorf("expected Ukraine, got %+v (ok=%v)", c, ok)
	}

	// Belgium and Netherlands are both inside the box around this point; Belgium is closer
	c, ok = Nearest(50.6, 4.5)
	if !ok || c.Name != "Belgium" {
		t.Errorf("expected Belgium, got %+v (ok=%v)", c, ok)
	}

	// Middle of the Pacific
	if c, ok := Nearest(0, -150); ok {
		t.Errorf("expected no match, got %s", c.Name)
	}
}

func TestDistance(t *testing.T) {
	d, ok := Distance("France", "Germany")
	if !ok {
		t.Fatal("expected both countries to resolve")
	}
	// Markers are roughly 816 km apart
	if d < 780 || d > 860 {
		t.Errorf("unexpected France-Germany distance: %.1f km", d)
	}

	same, _ := Distance("Japan", "japan")
	if math.Abs(same) > 1e-9 {
		t.Errorf("expected zero distance for the same country, got %f", same)
	}

	if _, ok := Distance("France", "Atlantis"); ok {
		t.Error("expected unknown country to fail")
	}
}
