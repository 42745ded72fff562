// Command aatconv converts a Getty AAT TERM.out tab-separated dump into
// the terms JSON file consumed by the AAT matcher.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/kass/go-lpf/pkg/aat"
	"github.com/kass/go-lpf/pkg/text"
)

func main() {
	var (
		inputFile  = flag.String("i", "data/aat/TERM.out", "Input AAT TERM.out file")
		outputFile = flag.String("o", "data/aat/aat_terms.json", "Output terms JSON file")
		idCol      = flag.Int("id-col", 0, "Column holding the term id")
		textCol    = flag.Int("text-col", 1, "Column holding the term text")
		langCol    = flag.Int("lang-col", 2, "Column holding the language tag (-1 if absent)")
	)
	flag.Parse()

	infile, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer infile.Close()

	reader := csv.NewReader(infile)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	terms := make(map[string][]aat.Label)
	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		rows++

		maxCol := *idCol
		if *textCol > maxCol {
			maxCol = *textCol
		}
		if *langCol > maxCol {
			maxCol = *langCol
		}
		if len(row) <= maxCol {
			log.Printf("Skipping short row %d (%d columns)", rows, len(row))
			continue
		}

		termID := text.Normalize(row[*idCol])
		termText := text.Normalize(row[*textCol])
		if termID == "" || termText == "" {
			continue
		}
		label := aat.Label{Text: termText}
		if *langCol >= 0 {
			label.Lang = text.Normalize(row[*langCol])
		}
		terms[termID] = append(terms[termID], label)
	}

	data, err := json.MarshalIndent(terms, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode terms: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	log.Printf("Converted %d rows into %d terms -> %s", rows, len(terms), *outputFile)
}
