// Package postgis exports LPF features to a PostGIS-enabled PostgreSQL
// database for spatial querying alongside the in-memory index.
package postgis

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kass/go-lpf/pkg/lpf"
	"github.com/kass/go-lpf/pkg/models"
)

// Store wraps a PostGIS connection holding a table of LPF features.
type Store struct {
	db *sql.DB
}

// New opens a PostGIS connection
func New(host, user, password, dbname string, port int) (*Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the feature table, dropping any existing one
func (s *Store) InitSchema() error {
	queries := []string{
		// Enable PostGIS extension
		`CREATE EXTENSION IF NOT EXISTS postgis;`,

		`DROP TABLE IF EXISTS lpf_features;`,

		// The full LPF record is kept as JSONB next to the extracted
		// geometry so round-tripping loses nothing.
		`CREATE TABLE lpf_features (
			id TEXT PRIMARY KEY,
			title TEXT,
			feature JSONB NOT NULL,
			geom GEOMETRY(GEOMETRY, 4326)
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// CreateSpatialIndex creates a GIST index on the geometry column
func (s *Store) CreateSpatialIndex() error {
	query := `CREATE INDEX idx_lpf_features_geom ON lpf_features USING GIST(geom);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}

	// Analyze table for better query planning
	if _, err := s.db.Exec("ANALYZE lpf_features;"); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}
	return nil
}

// BulkInsertFeatures inserts features in a single transaction. Features
// without an @id get a positional identifier; features without a
// geometry get a NULL geometry column.
func (s *Store) BulkInsertFeatures(features []*lpf.Feature) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO lpf_features (id, title, feature, geom)
		VALUES ($1, $2, $3, ST_SetSRID(ST_GeomFromGeoJSON($4), 4326))
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, f := range features {
		id := featureID(f, i)

		title := ""
		if t, ok := f.Property("title").(string); ok {
			title = t
		}

		record, err := lpf.Marshal(f)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to serialize feature %s: %w", id, err)
		}

		var geom any
		if f.Geometry != nil {
			geomJSON, err := lpf.Marshal(f.Geometry)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to serialize geometry of %s: %w", id, err)
			}
			geom = string(geomJSON)
		}

		if _, err := stmt.Exec(id, title, string(record), geom); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert feature %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// QueryBox returns the decoded features whose geometry intersects the
// given bounding box.
func (s *Store) QueryBox(box models.BoundingBox) ([]*lpf.Feature, error) {
	query := `
		SELECT feature FROM lpf_features
		WHERE geom IS NOT NULL
		  AND ST_Intersects(geom, ST_MakeEnvelope($1, $2, $3, $4, 4326))
	`
	rows, err := s.db.Query(query,
		box.BottomLeft.Lon, box.BottomLeft.Lat,
		box.TopRight.Lon, box.TopRight.Lat)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var features []*lpf.Feature
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		f, err := lpf.UnmarshalFeature(record)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored feature: %w", err)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

// Count returns the number of stored features
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM lpf_features").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count features: %w", err)
	}
	return count, nil
}

func featureID(f *lpf.Feature, i int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return fmt.Sprintf("feature-%d", i)
}
