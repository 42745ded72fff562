package lpf

import "encoding/json"

// GeometryType identifies one of the geometry kinds defined by RFC 7946.
type GeometryType string

const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"
)

// Geometry represents a GeoJSON geometry object. Exactly one of the
// coordinate fields is populated, matching Type. Positions are
// [lon, lat] or [lon, lat, alt].
type Geometry struct {
	Type            GeometryType
	Point           []float64
	MultiPoint      [][]float64
	LineString      [][]float64
	MultiLineString [][][]float64
	Polygon         [][][]float64
	MultiPolygon    [][][][]float64
	Geometries      []*Geometry
}

// NewPointGeometry creates a Point geometry from a single position.
func NewPointGeometry(position []float64) *Geometry {
	return &Geometry{Type: TypePoint, Point: position}
}

// NewMultiPointGeometry creates a MultiPoint geometry from positions.
func NewMultiPointGeometry(positions ...[]float64) *Geometry {
	return &Geometry{Type: TypeMultiPoint, MultiPoint: positions}
}

// NewLineStringGeometry creates a LineString geometry from positions.
func NewLineStringGeometry(positions [][]float64) *Geometry {
	return &Geometry{Type: TypeLineString, LineString: positions}
}

// NewMultiLineStringGeometry creates a MultiLineString geometry from lines.
func NewMultiLineStringGeometry(lines ...[][]float64) *Geometry {
	return &Geometry{Type: TypeMultiLineString, MultiLineString: lines}
}

// NewPolygonGeometry creates a Polygon geometry from linear rings.
func NewPolygonGeometry(rings [][][]float64) *Geometry {
	return &Geometry{Type: TypePolygon, Polygon: rings}
}

// NewMultiPolygonGeometry creates a MultiPolygon geometry from polygons.
func NewMultiPolygonGeometry(polygons ...[][][]float64) *Geometry {
	return &Geometry{Type: TypeMultiPolygon, MultiPolygon: polygons}
}

// NewCollectionGeometry creates a GeometryCollection from child geometries.
func NewCollectionGeometry(geometries ...*Geometry) *Geometry {
	return &Geometry{Type: TypeGeometryCollection, Geometries: geometries}
}

// Structure returns the generic structural value for the geometry,
// suitable for JSON serialization.
func (g *Geometry) Structure() map[string]any {
	m := map[string]any{"type": string(g.Type)}
	switch g.Type {
	case TypePoint:
		m["coordinates"] = g.Point
	case TypeMultiPoint:
		m["coordinates"] = g.MultiPoint
	case TypeLineString:
		m["coordinates"] = g.LineString
	case TypeMultiLineString:
		m["coordinates"] = g.MultiLineString
	case TypePolygon:
		m["coordinates"] = g.Polygon
	case TypeMultiPolygon:
		m["coordinates"] = g.MultiPolygon
	case TypeGeometryCollection:
		children := make([]any, len(g.Geometries))
		for i, child := range g.Geometries {
			children[i] = child.Structure()
		}
		m["geometries"] = children
	}
	return m
}

// MarshalJSON converts the geometry into RFC 7946 conformant JSON.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Structure())
}

// UnmarshalJSON decodes JSON into the geometry, validating its shape.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	decoded, err := UnmarshalGeometry(data)
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}

// UnmarshalGeometry decodes the data into a validated geometry.
func UnmarshalGeometry(data []byte) (*Geometry, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Err: err}
	}
	return DecodeGeometry(v)
}

// DecodeGeometry maps a generic structural value into a Geometry,
// validating the type tag and coordinate shape.
func DecodeGeometry(v any) (*Geometry, error) {
	return decodeGeometry(v, "geometry")
}

// Validate checks that the coordinate data matches the geometry type's
// shape rules: position arity, minimum lengths, and closed polygon rings.
func (g *Geometry) Validate() error {
	return g.validate("geometry")
}

func (g *Geometry) validate(path string) error {
	coords := joinPath(path, "coordinates")
	switch g.Type {
	case TypePoint:
		return checkPosition(g.Point, coords)
	case TypeMultiPoint:
		for i, p := range g.MultiPoint {
			if err := checkPosition(p, indexPath(coords, i)); err != nil {
				return err
			}
		}
		return nil
	case TypeLineString:
		return checkLineString(g.LineString, coords)
	case TypeMultiLineString:
		for i, line := range g.MultiLineString {
			if err := checkLineString(line, indexPath(coords, i)); err != nil {
				return err
			}
		}
		return nil
	case TypePolygon:
		return checkPolygon(g.Polygon, coords)
	case TypeMultiPolygon:
		for i, poly := range g.MultiPolygon {
			if err := checkPolygon(poly, indexPath(coords, i)); err != nil {
				return err
			}
		}
		return nil
	case TypeGeometryCollection:
		for i, child := range g.Geometries {
			if child == nil {
				return errAt(indexPath(joinPath(path, "geometries"), i), "geometry must not be nil")
			}
			if err := child.validate(indexPath(joinPath(path, "geometries"), i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return errAt(joinPath(path, "type"), "unrecognized geometry type %q", string(g.Type))
	}
}

func decodeGeometry(v any, path string) (*Geometry, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errAt(path, "geometry must be an object, got %s", describe(v))
	}
	rawType, present := m["type"]
	if !present {
		return nil, errAt(joinPath(path, "type"), "missing required field")
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, errAt(joinPath(path, "type"), "must be a string, got %s", describe(rawType))
	}

	g := &Geometry{Type: GeometryType(typeName)}
	if g.Type == TypeGeometryCollection {
		raw, present := m["geometries"]
		if !present {
			return nil, errAt(joinPath(path, "geometries"), "missing required field")
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, errAt(joinPath(path, "geometries"), "must be an array, got %s", describe(raw))
		}
		g.Geometries = make([]*Geometry, len(items))
		for i, item := range items {
			child, err := decodeGeometry(item, indexPath(joinPath(path, "geometries"), i))
			if err != nil {
				return nil, err
			}
			g.Geometries[i] = child
		}
		return g, nil
	}

	raw, present := m["coordinates"]
	if !present {
		return nil, errAt(joinPath(path, "coordinates"), "missing required field")
	}
	coords := joinPath(path, "coordinates")

	var err error
	switch g.Type {
	case TypePoint:
		g.Point, err = decodePosition(raw, coords)
	case TypeMultiPoint:
		g.MultiPoint, err = decodePositionList(raw, coords)
	case TypeLineString:
		g.LineString, err = decodePositionList(raw, coords)
	case TypeMultiLineString:
		g.MultiLineString, err = decodeLineList(raw, coords)
	case TypePolygon:
		g.Polygon, err = decodeLineList(raw, coords)
	case TypeMultiPolygon:
		g.MultiPolygon, err = decodePolygonList(raw, coords)
	default:
		return nil, errAt(joinPath(path, "type"), "unrecognized geometry type %q", typeName)
	}
	if err != nil {
		return nil, err
	}
	if err := g.validate(path); err != nil {
		return nil, err
	}
	return g, nil
}

func decodePosition(v any, path string) ([]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errAt(path, "position must be an array, got %s", describe(v))
	}
	position := make([]float64, len(items))
	for i, item := range items {
		n, ok := item.(float64)
		if !ok {
			return nil, errAt(indexPath(path, i), "coordinate must be a number, got %s", describe(item))
		}
		position[i] = n
	}
	return position, nil
}

func decodePositionList(v any, path string) ([][]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errAt(path, "must be an array of positions, got %s", describe(v))
	}
	positions := make([][]float64, len(items))
	for i, item := range items {
		position, err := decodePosition(item, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		positions[i] = position
	}
	return positions, nil
}

func decodeLineList(v any, path string) ([][][]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errAt(path, "must be an array, got %s", describe(v))
	}
	lines := make([][][]float64, len(items))
	for i, item := range items {
		line, err := decodePositionList(item, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

func decodePolygonList(v any, path string) ([][][][]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errAt(path, "must be an array, got %s", describe(v))
	}
	polygons := make([][][][]float64, len(items))
	for i, item := range items {
		polygon, err := decodeLineList(item, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		polygons[i] = polygon
	}
	return polygons, nil
}

func checkPosition(position []float64, path string) error {
	if len(position) < 2 || len(position) > 3 {
		return errAt(path, "position must have 2 or 3 coordinates, got %d", len(position))
	}
	return nil
}

func checkLineString(positions [][]float64, path string) error {
	if len(positions) < 2 {
		return errAt(path, "line string must have at least 2 positions, got %d", len(positions))
	}
	for i, p := range positions {
		if err := checkPosition(p, indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkPolygon(rings [][][]float64, path string) error {
	for i, ring := range rings {
		ringPath := indexPath(path, i)
		if len(ring) < 4 {
			return errAt(ringPath, "linear ring must have at least 4 positions, got %d", len(ring))
		}
		for j, p := range ring {
			if err := checkPosition(p, indexPath(ringPath, j)); err != nil {
				return err
			}
		}
		if !positionsEqual(ring[0], ring[len(ring)-1]) {
			return errAt(ringPath, "linear ring must be closed (first and last positions equal)")
		}
	}
	return nil
}

func positionsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// describe names the JSON kind of a decoded value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "value"
	}
}
