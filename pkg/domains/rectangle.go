// Package domains provides the lon-lat rectangles used to crop label maps to
// geographical areas of interest.
package domains

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Rectangle is a geographical area bounded by longitudes and latitudes in
// EPSG:4326. The zero value is invalid; use one of the constructors.
type Rectangle struct {
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
}

func (r Rectangle) validate() (Rectangle, error) {
	if r.MinLon > r.MaxLon || r.MinLat > r.MaxLat {
		return Rectangle{}, fmt.Errorf("incoherent bounds: min/max values crossed in %s", r)
	}
	return r, nil
}

// FromLLMM builds a rectangle from longitude-latitude minimum-maximum order
// (xmin, xmax, ymin, ymax).
func FromLLMM(xmin, xmax, ymin, ymax float64) (Rectangle, error) {
	return Rectangle{MinLon: xmin, MaxLon: xmax, MinLat: ymin, MaxLat: ymax}.validate()
}

// FromLBRT builds a rectangle from left-bottom-right-top order.
func FromLBRT(left, bottom, right, top float64) (Rectangle, error) {
	return Rectangle{MinLon: left, MaxLon: right, MinLat: bottom, MaxLat: top}.validate()
}

// FromTLBR builds a rectangle from its top-left and bottom-right corners.
func FromTLBR(topLeft, bottomRight Point) (Rectangle, error) {
	return Rectangle{
		MinLon: topLeft.Lon, MaxLat: topLeft.Lat,
		MaxLon: bottomRight.Lon, MinLat: bottomRight.Lat,
	}.validate()
}

// FromITLBR builds a rectangle from its top-left and bottom-right corners
// given in latitude-longitude order.
func FromITLBR(topLat, leftLon, bottomLat, rightLon float64) (Rectangle, error) {
	return Rectangle{
		MinLon: leftLon, MaxLat: topLat,
		MaxLon: rightLon, MinLat: bottomLat,
	}.validate()
}

// FromBLTR builds a rectangle from its bottom-left and top-right corners.
func FromBLTR(bottomLeft, topRight Point) (Rectangle, error) {
	return Rectangle{
		MinLon: bottomLeft.Lon, MinLat: bottomLeft.Lat,
		MaxLon: topRight.Lon, MaxLat: topRight.Lat,
	}.validate()
}

// FromPoints builds the bounding box of a set of points.
func FromPoints(points []Point) (Rectangle, error) {
	if len(points) == 0 {
		return Rectangle{}, fmt.Errorf("no points given")
	}
	r := Rectangle{MinLon: 180, MaxLon: -180, MinLat: 90, MaxLat: -90}
	for _, p := range points {
		if p.Lon < r.MinLon {
			r.MinLon = p.Lon
		}
		if p.Lon > r.MaxLon {
			r.MaxLon = p.Lon
		}
		if p.Lat < r.MinLat {
			r.MinLat = p.Lat
		}
		if p.Lat > r.MaxLat {
			r.MaxLat = p.Lat
		}
	}
	return r.validate()
}

type geojsonGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

type geojsonFeature struct {
	Type     string           `json:"type"`
	Geometry *geojsonGeometry `json:"geometry"`
	geojsonGeometry
}

// FromGeoJSON builds the bounding box of a GeoJSON polygon, given either as a
// Feature or as a bare geometry.
func FromGeoJSON(content []byte) (Rectangle, error) {
	var feature geojsonFeature
	if err := json.Unmarshal(content, &feature); err != nil {
		return Rectangle{}, fmt.Errorf("parse geojson: %w", err)
	}
	geometry := feature.Geometry
	if geometry == nil {
		geometry = &feature.geojsonGeometry
	}
	if len(geometry.Coordinates) == 0 || len(geometry.Coordinates[0]) == 0 {
		return Rectangle{}, fmt.Errorf("geojson has no polygon coordinates")
	}
	points := make([]Point, 0, len(geometry.Coordinates[0]))
	for _, coord := range geometry.Coordinates[0] {
		if len(coord) < 2 {
			return Rectangle{}, fmt.Errorf("geojson coordinate with %d components", len(coord))
		}
		points = append(points, Point{Lon: coord[0], Lat: coord[1]})
	}
	return FromPoints(points)
}

// LLMM exports to (xmin, xmax, ymin, ymax).
func (r Rectangle) LLMM() (float64, float64, float64, float64) {
	return r.MinLon, r.MaxLon, r.MinLat, r.MaxLat
}

// LBRT exports to (left, bottom, right, top).
func (r Rectangle) LBRT() (float64, float64, float64, float64) {
	return r.MinLon, r.MinLat, r.MaxLon, r.MaxLat
}

// TLBR exports the top-left and bottom-right corners.
func (r Rectangle) TLBR() (Point, Point) {
	return Point{Lon: r.MinLon, Lat: r.MaxLat}, Point{Lon: r.MaxLon, Lat: r.MinLat}
}

// BLTR exports the bottom-left and top-right corners.
func (r Rectangle) BLTR() (Point, Point) {
	return Point{Lon: r.MinLon, Lat: r.MinLat}, Point{Lon: r.MaxLon, Lat: r.MaxLat}
}

func (r Rectangle) Central() Point {
	return Point{
		Lon: (r.MinLon + r.MaxLon) / 2,
		Lat: (r.MinLat + r.MaxLat) / 2,
	}
}

func (r Rectangle) Contains(p Point) bool {
	return p.Lon >= r.MinLon && p.Lon <= r.MaxLon && p.Lat >= r.MinLat && p.Lat <= r.MaxLat
}

func (r Rectangle) Intersects(other Rectangle) bool {
	return r.MinLon <= other.MaxLon && other.MinLon <= r.MaxLon &&
		r.MinLat <= other.MaxLat && other.MinLat <= r.MaxLat
}

// Enlarge grows the rectangle by factor times its size on each side, clamped
// to world bounds. Suitable only for small domains.
func (r Rectangle) Enlarge(factor float64) Rectangle {
	dx := r.MaxLon - r.MinLon
	dy := r.MaxLat - r.MinLat
	return Rectangle{
		MinLon: clamp(r.MinLon-factor*dx, -180, 180),
		MaxLon: clamp(r.MaxLon+factor*dx, -180, 180),
		MinLat: clamp(r.MinLat-factor*dy, -90, 90),
		MaxLat: clamp(r.MaxLat+factor*dy, -90, 90),
	}
}

// Union returns the smallest rectangle covering both.
func (r Rectangle) Union(other Rectangle) Rectangle {
	bl1, tr1 := r.BLTR()
	bl2, tr2 := other.BLTR()
	out, _ := FromPoints([]Point{bl1, tr1, bl2, tr2})
	return out
}

// GeoJSON renders the rectangle as a GeoJSON Feature with a closed polygon
// ring running clockwise from the top-left corner.
func (r Rectangle) GeoJSON() []byte {
	ring := [][]float64{
		{r.MinLon, r.MaxLat},
		{r.MaxLon, r.MaxLat},
		{r.MaxLon, r.MinLat},
		{r.MinLon, r.MinLat},
		{r.MinLon, r.MaxLat},
	}
	feature := map[string]any{
		"type": "Feature",
		"geometry": map[string]any{
			"type":        "Polygon",
			"coordinates": [][][]float64{ring},
		},
	}
	content, _ := json.MarshalIndent(feature, "", "  ")
	return content
}

// Compact renders the bounds as a filename-safe identifier.
func (r Rectangle) Compact() string {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join([]string{
		"xmin" + format(r.MinLon),
		"xmax" + format(r.MaxLon),
		"ymin" + format(r.MinLat),
		"ymax" + format(r.MaxLat),
	}, "_")
}

func (r Rectangle) String() string {
	return fmt.Sprintf("minLon=%g, maxLon=%g, minLat=%g, maxLat=%g", r.MinLon, r.MaxLon, r.MinLat, r.MaxLat)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
