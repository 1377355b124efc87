package domains

import (
	"reflect"
	"testing"
)

func TestConstructors(t *testing.T) {
	want := Rectangle{MinLon: 1.336, MaxLon: 1.508, MinLat: 43.554, MaxLat: 43.674}
	tests := []struct {
		name  string
		build func() (Rectangle, error)
	}{
		{
			name:  "llmm",
			build: func() (Rectangle, error) { return FromLLMM(1.336, 1.508, 43.554, 43.674) },
		},
		{
			name:  "lbrt",
			build: func() (Rectangle, error) { return FromLBRT(1.336, 43.554, 1.508, 43.674) },
		},
		{
			name: "tlbr",
			build: func() (Rectangle, error) {
				return FromTLBR(Point{Lon: 1.336, Lat: 43.674}, Point{Lon: 1.508, Lat: 43.554})
			},
		},
		{
			name:  "itlbr",
			build: func() (Rectangle, error) { return FromITLBR(43.674, 1.336, 43.554, 1.508) },
		},
		{
			name: "bltr",
			build: func() (Rectangle, error) {
				return FromBLTR(Point{Lon: 1.336, Lat: 43.554}, Point{Lon: 1.508, Lat: 43.674})
			},
		},
		{
			name: "points",
			build: func() (Rectangle, error) {
				return FromPoints([]Point{
					{Lon: 1.508, Lat: 43.554},
					{Lon: 1.336, Lat: 43.674},
					{Lon: 1.4, Lat: 43.6},
				})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestIncoherentBounds(t *testing.T) {
	if _, err := FromLLMM(10, -10, 0, 1); err == nil {
		t.Error("expected error for crossed longitudes")
	}
	if _, err := FromLLMM(-10, 10, 1, 0); err == nil {
		t.Error("expected error for crossed latitudes")
	}
}

func TestFromGeoJSON(t *testing.T) {
	bare := []byte(`{"type": "Polygon", "coordinates": [[[-6.5468919, 53.1782636], [-6.0439503, 53.1782636], [-6.0439503, 53.509983], [-6.5468919, 53.509983], [-6.5468919, 53.1782636]]]}`)
	want := Rectangle{MinLon: -6.5468919, MaxLon: -6.0439503, MinLat: 53.1782636, MaxLat: 53.509983}
	got, err := FromGeoJSON(bare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	feature, err := FromGeoJSON(want.GeoJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(feature, want) {
		t.Errorf("feature round trip: got %v, want %v", feature, want)
	}
}

func TestEnlarge(t *testing.T) {
	r := Rectangle{MinLon: 0, MaxLon: 1, MinLat: 10, MaxLat: 12}
	want := Rectangle{MinLon: -1, MaxLon: 2, MinLat: 8, MaxLat: 14}
	if got := r.Enlarge(1); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	wide := Rectangle{MinLon: -170, MaxLon: 170, MinLat: -80, MaxLat: 80}
	clamped := wide.Enlarge(1)
	if clamped.MinLon != -180 || clamped.MaxLon != 180 || clamped.MinLat != -90 || clamped.MaxLat != 90 {
		t.Errorf("expected clamping to world bounds, got %v", clamped)
	}
}

func TestCentralAndContains(t *testing.T) {
	r := Rectangle{MinLon: -2, MaxLon: 2, MinLat: 40, MaxLat: 44}
	center := r.Central()
	if center.Lon != 0 || center.Lat != 42 {
		t.Errorf("central point: got %v", center)
	}
	if !r.Contains(center) {
		t.Error("rectangle should contain its central point")
	}
	if r.Contains(Point{Lon: 3, Lat: 42}) {
		t.Error("point outside longitudes should not be contained")
	}
}

func TestIntersectsAndUnion(t *testing.T) {
	a := Rectangle{MinLon: 0, MaxLon: 2, MinLat: 0, MaxLat: 2}
	b := Rectangle{MinLon: 1, MaxLon: 3, MinLat: 1, MaxLat: 3}
	c := Rectangle{MinLon: 10, MaxLon: 11, MinLat: 10, MaxLat: 11}
	if !a.Intersects(b) {
		t.Error("overlapping rectangles should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint rectangles should not intersect")
	}
	want := Rectangle{MinLon: 0, MaxLon: 3, MinLat: 0, MaxLat: 3}
	if got := a.Union(b); !reflect.DeepEqual(got, want) {
		t.Errorf("union: got %v, want %v", got, want)
	}
}

func TestCompact(t *testing.T) {
	r := Rectangle{MinLon: -10.16, MaxLon: -10.141, MinLat: 51.83, MaxLat: 51.841}
	want := "xmin-10.16_xmax-10.141_ymin51.83_ymax51.841"
	if got := r.Compact(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNamedDomains(t *testing.T) {
	r, err := Get("toulouse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MinLon != 1.336 || r.MaxLat != 43.674 {
		t.Errorf("unexpected bounds for toulouse: %v", r)
	}
	if _, err := Get("atlantis"); err == nil {
		t.Error("expected error for unknown domain")
	}
	fulldom, err := Get("bigearthnet_fulldom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fulldom.MinLon != -9.00023345437725 || fulldom.MaxLat != 68.02168200047284 {
		t.Errorf("unexpected bounds for bigearthnet_fulldom: %v", fulldom)
	}
	names := Names()
	if len(names) != 21 {
		t.Errorf("expected 21 named domains, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		if _, err := Get(name); err != nil {
			t.Errorf("named domain %q: %v", name, err)
		}
	}
}
