package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kass/go-lpf/internal/config"
	"github.com/kass/go-lpf/pkg/aat"
	"github.com/kass/go-lpf/pkg/index"
	"github.com/kass/go-lpf/pkg/lang"
	"github.com/kass/go-lpf/pkg/lpf"
	"github.com/kass/go-lpf/pkg/models"
	"github.com/kass/go-lpf/pkg/postgis"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lpf",
	Short: "Linked Places Format gazetteer toolkit",
	Long:  `Validate, query, and export Linked Places Format (LPF) gazetteer files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an LPF file",
	Long:  `Load an LPF file and report the first shape violation, if any.`,
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Run spatial queries over an LPF file",
	Long:  `Load an LPF file into the R-Tree index and run box, radius, or nearest-neighbor queries.`,
	Args:  cobra.ExactArgs(1),
	Run:   runQuery,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export an LPF file to PostGIS",
	Long:  `Load an LPF file and bulk-insert its features into the configured PostGIS database.`,
	Args:  cobra.ExactArgs(1),
	Run:   runExport,
}

var matchCmd = &cobra.Command{
	Use:   "match <label>",
	Short: "Match a label against AAT terms",
	Long:  `Match a place-type label (and optional aliases) against a Getty AAT terms file.`,
	Args:  cobra.ExactArgs(1),
	Run:   runMatch,
}

var (
	strict       bool
	centerLat    float64
	centerLon    float64
	searchRadius float64
	numNeighbors int
	minLat       float64
	maxLat       float64
	minLon       float64
	maxLon       float64
	termsFile    string
	aliases      []string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "lpf.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	validateCmd.Flags().BoolVar(&strict, "strict", false, "Also validate LPF property schema (title, ccodes, fclasses)")

	queryCmd.Flags().Float64Var(&centerLat, "lat", 0, "Center latitude for radius and nearest queries")
	queryCmd.Flags().Float64Var(&centerLon, "lon", 0, "Center longitude for radius and nearest queries")
	queryCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 0, "Search radius in km")
	queryCmd.Flags().IntVarP(&numNeighbors, "nearest", "n", 0, "Number of nearest neighbors to find")
	queryCmd.Flags().Float64Var(&minLat, "min-lat", 0, "Bounding box minimum latitude")
	queryCmd.Flags().Float64Var(&maxLat, "max-lat", 0, "Bounding box maximum latitude")
	queryCmd.Flags().Float64Var(&minLon, "min-lon", 0, "Bounding box minimum longitude")
	queryCmd.Flags().Float64Var(&maxLon, "max-lon", 0, "Bounding box maximum longitude")

	matchCmd.Flags().StringVarP(&termsFile, "terms", "t", "", "AAT terms JSON file (overrides config)")
	matchCmd.Flags().StringArrayVarP(&aliases, "alias", "a", nil, "Alias label in text@lang form (repeatable)")

	rootCmd.AddCommand(validateCmd, queryCmd, exportCmd, matchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCollection(path string) *lpf.FeatureCollection {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to open LPF file")
	}
	defer file.Close()

	fc, err := lpf.Decode(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to decode LPF file")
	}
	return fc
}

func runValidate(cmd *cobra.Command, args []string) {
	fc := loadCollection(args[0])
	log.Info().Int("features", fc.Len()).Msg("Document is well-formed LPF")

	if !strict {
		return
	}
	failures := 0
	for i, f := range fc.Features {
		if err := f.ValidateProperties(); err != nil {
			failures++
			log.Error().Err(err).Int("feature", i).Msg("Property validation failed")
		}
	}
	if failures > 0 {
		log.Fatal().Int("failures", failures).Msg("Strict validation failed")
	}
	log.Info().Msg("Strict validation passed")
}

func runQuery(cmd *cobra.Command, args []string) {
	fc := loadCollection(args[0])

	idx := index.New()
	indexed := idx.IndexCollection(fc)
	log.Info().Int("total", fc.Len()).Int("indexed", indexed).Msg("Index built")

	var (
		results []*lpf.Feature
		err     error
	)
	switch {
	case numNeighbors > 0:
		results = idx.NearestNeighbors(models.Location{Lat: centerLat, Lon: centerLon}, numNeighbors)
	case searchRadius > 0:
		results, err = idx.SearchRadius(models.Location{Lat: centerLat, Lon: centerLon}, searchRadius)
	default:
		box := models.BoundingBox{
			BottomLeft: models.Location{Lat: minLat, Lon: minLon},
			TopRight:   models.Location{Lat: maxLat, Lon: maxLon},
		}
		results, err = idx.SearchBox(box)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Query failed")
	}

	for _, f := range results {
		title, _ := f.Property("title").(string)
		fmt.Printf("%v\t%s\n", f.ID, title)
	}
	log.Info().Int("results", len(results)).Msg("Query complete")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", configFile).Msg("Failed to load configuration")
	}

	fc := loadCollection(args[0])

	store, err := postgis.New(cfg.PostGIS.Host, cfg.PostGIS.User,
		cfg.PostGIS.Password, cfg.PostGIS.Database, cfg.PostGIS.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostGIS")
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize schema")
	}
	if err := store.BulkInsertFeatures(fc.Features); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert features")
	}
	if err := store.CreateSpatialIndex(); err != nil {
		log.Fatal().Err(err).Msg("Failed to create spatial index")
	}

	count, err := store.Count()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count features")
	}
	log.Info().Int64("features", count).Msg("Export complete")
}

func runMatch(cmd *cobra.Command, args []string) {
	path := termsFile
	if path == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("No terms file given and no configuration found")
		}
		path = cfg.Terms
	}
	if path == "" {
		log.Fatal().Msg("No AAT terms file configured")
	}

	matcher, err := aat.LoadMatcher(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AAT terms")
	}

	label, err := lang.Parse(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid label")
	}
	aliasStrings := make([]lang.String, 0, len(aliases))
	for _, a := range aliases {
		parsed, err := lang.Parse(a)
		if err != nil {
			log.Fatal().Err(err).Str("alias", a).Msg("Invalid alias")
		}
		aliasStrings = append(aliasStrings, parsed)
	}

	matches := matcher.Match(label, aliasStrings...)
	for _, term := range matches {
		fmt.Printf("%s\t%s\n", term.ID, term.Name)
	}
	log.Info().Int("matches", len(matches)).Msg("Match complete")
}
