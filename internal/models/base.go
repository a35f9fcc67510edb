// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Point is a longitude/latitude pair in WGS 84.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// GeoJSONPoint is the shape returned by ST_AsGeoJSON for a point: coordinates are [lon, lat].
type GeoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewGeoJSONPoint(p Point) GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Longitude, p.Latitude}}
}

func (g GeoJSONPoint) Point() Point {
	return Point{Longitude: g.Coordinates[0], Latitude: g.Coordinates[1]}
}

func (g GeoJSONPoint) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan unmarshals an ST_AsGeoJSON text column.
func (g *GeoJSONPoint) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("GeoJSONPoint: expected []byte or string, got %T", src)
	}
	if err := json.Unmarshal(b, g); err != nil {
		return fmt.Errorf("GeoJSONPoint: %w", err)
	}
	if g.Type != "Point" {
		return fmt.Errorf("GeoJSONPoint: expected Point, got %q", g.Type)
	}
	return nil
}
