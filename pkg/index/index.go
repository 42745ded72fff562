// Package index provides an R-Tree spatial index over LPF features,
// keyed by the bounding box of each feature's geometry. Operations are
// safe for concurrent use.
package index

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-lpf/pkg/lpf"
	"github.com/kass/go-lpf/pkg/models"
)

const (
	tolerance   = 0.01
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	earthRadius = 6371.0 // km
)

// world covers every valid coordinate; used to enumerate the index.
var world = models.BoundingBox{
	BottomLeft: models.Location{Lat: -90, Lon: -180},
	TopRight:   models.Location{Lat: 90, Lon: 180},
}

// indexedFeature wraps a feature with its precomputed bounds for R-Tree
// insertion.
type indexedFeature struct {
	*lpf.Feature
	box  models.BoundingBox
	rect *rtreego.Rect
}

func (f *indexedFeature) Bounds() *rtreego.Rect {
	return f.rect
}

// Index is a thread-safe R-Tree based spatial index over LPF features.
type Index struct {
	tree      *rtreego.Rtree
	mu        sync.RWMutex
	itemCount atomic.Int64
}

// New creates an empty feature index.
func New() *Index {
	return &Index{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}
}

// IndexCollection indexes every feature of the collection that has a
// geometry. It returns the number of features indexed.
func (x *Index) IndexCollection(fc *lpf.FeatureCollection) int {
	return x.IndexFeatures(fc.Features)
}

// IndexFeatures indexes a batch of features, computing bounds in
// parallel. Features without a geometry are skipped; LPF permits them
// but they cannot be located.
func (x *Index) IndexFeatures(features []*lpf.Feature) int {
	if len(features) == 0 {
		return 0
	}

	numCPU := runtime.NumCPU()
	items := make([]*indexedFeature, len(features))
	var wg sync.WaitGroup

	batchSize := len(features) / numCPU
	if batchSize < 1 {
		batchSize = 1
		numCPU = len(features)
	}

	for i := 0; i < numCPU && i*batchSize < len(features); i++ {
		wg.Add(1)
		start := i * batchSize
		end := start + batchSize
		if i == numCPU-1 || end > len(features) {
			end = len(features)
		}

		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				f := features[j]
				if f == nil {
					continue
				}
				box, ok := bounds(f.Geometry)
				if !ok {
					continue
				}
				rect, err := boxRect(box)
				if err != nil {
					continue
				}
				items[j] = &indexedFeature{Feature: f, box: box, rect: rect}
			}
		}(start, end)
	}

	wg.Wait()

	x.mu.Lock()
	defer x.mu.Unlock()

	count := 0
	for _, item := range items {
		if item != nil {
			x.tree.Insert(item)
			count++
		}
	}
	x.itemCount.Add(int64(count))
	return count
}

// SearchBox returns all features whose bounds intersect the given box.
func (x *Index) SearchBox(box models.BoundingBox) ([]*lpf.Feature, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rect, err := boxRect(box)
	if err != nil {
		return nil, err
	}

	results := x.tree.SearchIntersect(rect)
	features := make([]*lpf.Feature, 0, len(results))
	for _, result := range results {
		item, ok := result.(*indexedFeature)
		if !ok || item.Feature == nil {
			continue
		}
		if box.Intersects(item.box) {
			features = append(features, item.Feature)
		}
	}
	return features, nil
}

// SearchRadius returns all features whose geometry centroid lies within
// radiusKm of the center.
func (x *Index) SearchRadius(center models.Location, radiusKm float64) ([]*lpf.Feature, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	// Convert radius to degrees (approximation)
	deg := (radiusKm / earthRadius) * (180 / math.Pi)
	queryBox := models.BoundingBox{
		BottomLeft: models.Location{Lat: center.Lat - deg, Lon: center.Lon - deg},
		TopRight:   models.Location{Lat: center.Lat + deg, Lon: center.Lon + deg},
	}
	rect, err := boxRect(queryBox)
	if err != nil {
		return nil, err
	}

	results := x.tree.SearchIntersect(rect)
	features := make([]*lpf.Feature, 0, len(results))
	for _, result := range results {
		item, ok := result.(*indexedFeature)
		if !ok || item.Feature == nil {
			continue
		}
		c, ok := centroid(item.Geometry)
		if !ok {
			continue
		}
		if Distance(center.Lat, center.Lon, c.Lat, c.Lon) <= radiusKm {
			features = append(features, item.Feature)
		}
	}
	return features, nil
}

// NearestNeighbors returns the n features nearest to the given location,
// ordered by centroid distance.
func (x *Index) NearestNeighbors(center models.Location, n int) []*lpf.Feature {
	x.mu.RLock()
	defer x.mu.RUnlock()

	queryPoint := rtreego.Point{center.Lat, center.Lon}
	results := x.tree.NearestNeighbors(n, queryPoint)

	type candidate struct {
		feature  *lpf.Feature
		distance float64
	}
	candidates := make([]candidate, 0, len(results))
	for _, result := range results {
		item, ok := result.(*indexedFeature)
		if !ok || item.Feature == nil {
			continue
		}
		c, ok := centroid(item.Geometry)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			feature:  item.Feature,
			distance: Distance(center.Lat, center.Lon, c.Lat, c.Lon),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	features := make([]*lpf.Feature, len(candidates))
	for i, c := range candidates {
		features[i] = c.feature
	}
	return features
}

// Count returns the number of indexed features.
func (x *Index) Count() int64 {
	return x.itemCount.Load()
}

// Clear removes all features from the index.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
	x.itemCount.Store(0)
}

// boxRect converts a bounding box to an rtreego rect, widening
// degenerate spans (point features) by a small tolerance.
func boxRect(box models.BoundingBox) (*rtreego.Rect, error) {
	latSpan := box.TopRight.Lat - box.BottomLeft.Lat
	lonSpan := box.TopRight.Lon - box.BottomLeft.Lon
	if latSpan < tolerance {
		latSpan = tolerance
	}
	if lonSpan < tolerance {
		lonSpan = tolerance
	}
	return rtreego.NewRect(
		rtreego.Point{box.BottomLeft.Lat, box.BottomLeft.Lon},
		[]float64{latSpan, lonSpan},
	)
}

// Distance calculates the Haversine distance between two points in kilometers
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
