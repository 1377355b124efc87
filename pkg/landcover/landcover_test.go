package landcover

import (
	"testing"
)

func TestGetAndCanonicalName(t *testing.T) {
	for _, name := range []string{"esawc", "esawc.hdf5"} {
		m, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", name, err)
		}
		if m.Name != "esawc.hdf5" {
			t.Errorf("Get(%q).Name = %q, want %q", name, m.Name, "esawc.hdf5")
		}
	}
	if _, err := Get("atlantis.hdf5"); err == nil {
		t.Error("expected error for unknown map")
	}
	if IsRegistered("atlantis") {
		t.Error("IsRegistered(atlantis) = true")
	}
}

func TestPatchGeometry(t *testing.T) {
	tests := []struct {
		name     string
		pixels   int
		channels int
	}{
		{name: "esawc.hdf5", pixels: 600, channels: 12},
		{name: "esgp.hdf5", pixels: 100, channels: 34},
		{name: "ecosg.hdf5", pixels: 20, channels: 34},
		{name: "oso.hdf5", pixels: 600, channels: 25},
		{name: "clc.hdf5", pixels: 60, channels: 45},
		{name: "cgls.hdf5", pixels: 60, channels: 23},
	}
	for _, tt := range tests {
		m, err := Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tt.name, err)
		}
		if got := m.PatchPixels(); got != tt.pixels {
			t.Errorf("%s PatchPixels() = %d, want %d", tt.name, got, tt.pixels)
		}
		if got := m.Channels(); got != tt.channels {
			t.Errorf("%s Channels() = %d, want %d", tt.name, got, tt.channels)
		}
	}
}

func TestEmbeddingResize(t *testing.T) {
	tests := []struct {
		name      string
		nPxEmb    int
		modelType string
		want      int
	}{
		{name: "ecosg", nPxEmb: 20, modelType: "universal_embedding", want: 0},
		{name: "ecosg", nPxEmb: 20, modelType: "attention_autoencoder", want: 1},
		{name: "esgp", nPxEmb: 100, modelType: "transformer_embedding", want: 0},
		{name: "esawc", nPxEmb: 600, modelType: "universal_embedding", want: 0},
		{name: "clc", nPxEmb: 600, modelType: "universal_embedding", want: 10},
	}
	for _, tt := range tests {
		got, err := EmbeddingResize(tt.name, tt.nPxEmb, tt.modelType)
		if err != nil {
			t.Fatalf("EmbeddingResize(%q) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("EmbeddingResize(%q, %d, %q) = %d, want %d", tt.name, tt.nPxEmb, tt.modelType, got, tt.want)
		}
	}
	if _, err := EmbeddingResize("atlantis", 60, "universal_embedding"); err == nil {
		t.Error("expected error for unknown map")
	}
}

func TestAllSorted(t *testing.T) {
	maps := All()
	if len(maps) != 6 {
		t.Fatalf("expected 6 maps, got %d", len(maps))
	}
	for i := 1; i < len(maps); i++ {
		if maps[i-1].Name >= maps[i].Name {
			t.Errorf("maps not sorted: %q before %q", maps[i-1].Name, maps[i].Name)
		}
	}
}

func TestEcoclimapHierarchyCoversLabelsOnce(t *testing.T) {
	seen := map[string]int{}
	for _, members := range EcoclimapSGHierarchy {
		for _, label := range members {
			seen[label]++
		}
	}
	for _, label := range EcoclimapSGLabels {
		if label == "no data" {
			continue
		}
		if seen[label] != 1 {
			t.Errorf("label %q appears %d times in hierarchy, want 1", label, seen[label])
		}
	}
	if len(seen) != len(EcoclimapSGLabels)-1 {
		t.Errorf("hierarchy holds %d labels, want %d", len(seen), len(EcoclimapSGLabels)-1)
	}
}
