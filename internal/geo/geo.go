// Package geo holds the pure geometry used by matching and routing.
package geo

import "math"

// EarthRadiusKm is the mean earth radius used for great-circle distance.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Equal reports whether two points are the same coordinate.
func (p Point) Equal(o Point) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}

// Valid reports whether the point lies within coordinate bounds.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b Point) float64 {
	if a.Equal(b) {
		return 0
	}
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := lat2 - lat1
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Centroid returns the arithmetic mean of the points. It returns the zero point for an empty slice.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var lat, lng float64
	for _, p := range points {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: lat / n, Lng: lng / n}
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// LineString is a GeoJSON LineString with [lng, lat] coordinate pairs.
type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// NewLineString builds a LineString through the points in order.
func NewLineString(points ...Point) LineString {
	ls := LineString{Type: "LineString", Coordinates: make([][2]float64, 0, len(points))}
	for _, p := range points {
		ls.Coordinates = append(ls.Coordinates, [2]float64{p.Lng, p.Lat})
	}
	return ls
}

// Append adds coordinates, skipping a leading pair equal to the current tail.
func (ls LineString) Append(coords [][2]float64) LineString {
	if ls.Type == "" {
		ls.Type = "LineString"
	}
	for i, c := range coords {
		if i == 0 && len(ls.Coordinates) > 0 && ls.Coordinates[len(ls.Coordinates)-1] == c {
			continue
		}
		ls.Coordinates = append(ls.Coordinates, c)
	}
	return ls
}
