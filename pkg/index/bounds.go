package index

import (
	"github.com/kass/go-lpf/pkg/lpf"
	"github.com/kass/go-lpf/pkg/models"
)

// bounds computes the bounding box of a geometry from its positions.
// GeoJSON positions are [lon, lat], so axes are swapped into the
// lat/lon ordering the index uses. The second return is false for a nil
// geometry or one without positions.
func bounds(g *lpf.Geometry) (models.BoundingBox, bool) {
	if g == nil {
		return models.BoundingBox{}, false
	}
	acc := boxAccumulator{}
	acc.addGeometry(g)
	if !acc.seen {
		return models.BoundingBox{}, false
	}
	return models.BoundingBox{
		BottomLeft: models.Location{Lat: acc.minLat, Lon: acc.minLon},
		TopRight:   models.Location{Lat: acc.maxLat, Lon: acc.maxLon},
	}, true
}

// centroid returns the center of the geometry's bounding box.
func centroid(g *lpf.Geometry) (models.Location, bool) {
	box, ok := bounds(g)
	if !ok {
		return models.Location{}, false
	}
	return models.Location{
		Lat: (box.BottomLeft.Lat + box.TopRight.Lat) / 2,
		Lon: (box.BottomLeft.Lon + box.TopRight.Lon) / 2,
	}, true
}

type boxAccumulator struct {
	seen                       bool
	minLat, minLon, maxLat, maxLon float64
}

func (a *boxAccumulator) addPosition(p []float64) {
	if len(p) < 2 {
		return
	}
	lon, lat := p[0], p[1]
	if !a.seen {
		a.minLat, a.maxLat = lat, lat
		a.minLon, a.maxLon = lon, lon
		a.seen = true
		return
	}
	if lat < a.minLat {
		a.minLat = lat
	}
	if lat > a.maxLat {
		a.maxLat = lat
	}
	if lon < a.minLon {
		a.minLon = lon
	}
	if lon > a.maxLon {
		a.maxLon = lon
	}
}

func (a *boxAccumulator) addPositions(positions [][]float64) {
	for _, p := range positions {
		a.addPosition(p)
	}
}

func (a *boxAccumulator) addGeometry(g *lpf.Geometry) {
	switch g.Type {
	case lpf.TypePoint:
		a.addPosition(g.Point)
	case lpf.TypeMultiPoint:
		a.addPositions(g.MultiPoint)
	case lpf.TypeLineString:
		a.addPositions(g.LineString)
	case lpf.TypeMultiLineString:
		for _, line := range g.MultiLineString {
			a.addPositions(line)
		}
	case lpf.TypePolygon:
		for _, ring := range g.Polygon {
			a.addPositions(ring)
		}
	case lpf.TypeMultiPolygon:
		for _, polygon := range g.MultiPolygon {
			for _, ring := range polygon {
				a.addPositions(ring)
			}
		}
	case lpf.TypeGeometryCollection:
		for _, child := range g.Geometries {
			if child != nil {
				a.addGeometry(child)
			}
		}
	}
}
