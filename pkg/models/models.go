// Package models holds the shared spatial query types used by the
// index and PostGIS layers.
package models

// Location represents a geographic location with latitude and longitude
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Location
	TopRight   Location
}

// Contains reports whether the location falls within the box, borders
// included.
func (b BoundingBox) Contains(l Location) bool {
	return l.Lat >= b.BottomLeft.Lat && l.Lat <= b.TopRight.Lat &&
		l.Lon >= b.BottomLeft.Lon && l.Lon <= b.TopRight.Lon
}

// Intersects reports whether the two boxes overlap.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.BottomLeft.Lat <= other.TopRight.Lat &&
		b.TopRight.Lat >= other.BottomLeft.Lat &&
		b.BottomLeft.Lon <= other.TopRight.Lon &&
		b.TopRight.Lon >= other.BottomLeft.Lon
}
