// gen-survey writes a synthetic long-format vegetation survey CSV for
// fixtures and benchmarks.
//
// The generated table mimics real field exports in the ways that matter
// to matrix building:
//   - Covariates are constant within a sampling event (recorded once per visit)
//   - Some (event, species) pairs repeat, so builders must average covers
//   - A small share of cover cells is damaged ("n/a") and must be skipped
//   - Rows mix the 400 and 1000 square-metre size classes
//
// Species names are synthetic genus/epithet combinations, not real taxa.
// The random seed is fixed, so the same arguments always produce the
// same file.
//
// Usage:
//
//	go run . <plots> <species> <output>
//
// Examples:
//
//	go run . 120 80 testdata/synthetic.csv
//	go run . 1500 400 /tmp/benchmark-survey.csv
package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
)

// Generation constants
const (
	// Seed for the random source; fixed so generated fixtures are stable
	randomSeed = 906

	// Fraction of species rows repeated within their event
	duplicateShare = 0.04

	// Fraction of rows with an unusable cover value
	damagedShare = 0.02

	// Species per sampling event, before clamping to the pool size
	minSpeciesPerEvent = 5
	maxSpeciesPerEvent = 25
)

// surveyColumns is the header of the generated file, matching the
// default column mapping of dataset descriptors.
var surveyColumns = []string{
	"plot", "date", "easting", "northing",
	"size_class", "species", "cover",
	"elevation", "tci", "stream_dist", "disturbance", "solar_rad",
}

// coverMidpoints are Braun-Blanquet style class midpoints in percent.
var coverMidpoints = []float64{0.1, 0.5, 1, 2.5, 5, 12.5, 25, 37.5, 62.5, 87.5}

// sizeClasses are subplot areas in square metres.
var sizeClasses = []float64{400, 1000}

// disturbanceClasses are historic land-use categories.
var disturbanceClasses = []string{"VIRGIN", "LIGHT", "SETTLE", "BIG"}

var genera = []string{
	"Abies", "Acer", "Amelanchier", "Betula", "Carya", "Castanea",
	"Cornus", "Fagus", "Fraxinus", "Halesia", "Ilex", "Liriodendron",
	"Magnolia", "Nyssa", "Oxydendrum", "Picea", "Pinus", "Prunus",
	"Quercus", "Rhododendron", "Robinia", "Sorbus", "Tilia", "Tsuga",
}

var epithets = []string{
	"alba", "alleghaniensis", "americana", "balsamea", "canadensis",
	"coccinea", "flava", "fraseri", "grandifolia", "lutea", "maximum",
	"montana", "occidentalis", "rubrum", "serotina", "sylvatica",
	"tremuloides", "virginiana",
}

func main() {
	// Parse positional arguments
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <plots> <species> <output>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  plots    number of sampling events to generate\n")
		fmt.Fprintf(os.Stderr, "  species  size of the species pool\n")
		fmt.Fprintf(os.Stderr, "  output   path for the generated survey CSV\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s 120 80 testdata/synthetic.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s 1500 400 /tmp/benchmark-survey.csv\n", os.Args[0])
		os.Exit(1)
	}

	plots, err := strconv.Atoi(os.Args[1])
	if err != nil || plots < 1 {
		fmt.Fprintf(os.Stderr, "plots must be a positive integer, got %q\n", os.Args[1])
		os.Exit(1)
	}
	speciesCount, err := strconv.Atoi(os.Args[2])
	if err != nil || speciesCount < 1 {
		fmt.Fprintf(os.Stderr, "species must be a positive integer, got %q\n", os.Args[2])
		os.Exit(1)
	}
	outputPath := os.Args[3]

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting survey generation",
		"plots", plots,
		"species", speciesCount,
		"output", outputPath,
	)

	if err := generate(logger, plots, speciesCount, outputPath); err != nil {
		logger.Error("survey generation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("survey generation complete", "output", outputPath)
}

// generate writes the survey file: one block of rows per sampling event,
// each row a species observation carrying the event's covariates.
func generate(logger *slog.Logger, plots, speciesCount int, outputPath string) error {
	pool, err := buildSpeciesPool(speciesCount)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(surveyColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rng := rand.New(rand.NewSource(randomSeed))

	var rows, duplicates, damaged int
	for i := 0; i < plots; i++ {
		site := newEventSite(rng, i)

		richness := minSpeciesPerEvent +
			rng.Intn(maxSpeciesPerEvent-minSpeciesPerEvent+1)
		if richness > len(pool) {
			richness = len(pool)
		}

		for _, name := range pickSpecies(rng, pool, richness) {
			record := site.record(rng, name)
			if rng.Float64() < damagedShare {
				record[6] = "n/a"
				damaged++
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			rows++

			// Repeat some species within the event so downstream
			// builders have duplicates to average.
			if rng.Float64() < duplicateShare {
				if err := w.Write(site.record(rng, name)); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
				rows++
				duplicates++
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Info("rows written",
		"rows", rows,
		"events", plots,
		"species_pool", len(pool),
		"duplicates", duplicates,
		"damaged", damaged,
	)
	return nil
}

// buildSpeciesPool returns n distinct synthetic species names built from
// genus/epithet combinations.
func buildSpeciesPool(n int) ([]string, error) {
	max := len(genera) * len(epithets)
	if n > max {
		return nil, fmt.Errorf(
			"species pool supports at most %d names, got %d", max, n,
		)
	}
	pool := make([]string, 0, n)
	for _, g := range genera {
		for _, e := range epithets {
			if len(pool) == n {
				return pool, nil
			}
			pool = append(pool, g+" "+e)
		}
	}
	return pool, nil
}

// eventSite holds the per-event columns that stay constant across an
// event's rows.
type eventSite struct {
	plot        string
	date        string
	easting     string
	northing    string
	elevation   string
	tci         string
	streamDist  string
	disturbance string
	solarRad    string
}

// newEventSite draws a sampling event: plot label, survey date, UTM
// coordinates and site covariates.
func newEventSite(rng *rand.Rand, i int) eventSite {
	return eventSite{
		plot:    fmt.Sprintf("p%04d", i+1),
		date:    fmt.Sprintf("2004-%02d-%02d", 6+rng.Intn(3), 1+rng.Intn(28)),
		easting: strconv.Itoa(250000 + rng.Intn(50000)),
		northing: strconv.Itoa(
			5150000 + rng.Intn(100000),
		),
		elevation:   formatFloat(300+rng.Float64()*1400, 0),
		tci:         formatFloat(2+rng.Float64()*10, 1),
		streamDist:  formatFloat(rng.Float64()*500, 0),
		disturbance: disturbanceClasses[rng.Intn(len(disturbanceClasses))],
		solarRad:    formatFloat(0.5+rng.Float64()*0.5, 2),
	}
}

// record assembles one observation row for the event. Size class and
// cover vary per row, everything else comes from the event.
func (s eventSite) record(rng *rand.Rand, species string) []string {
	sizeClass := sizeClasses[1]
	if rng.Float64() < 0.3 {
		sizeClass = sizeClasses[0]
	}
	cover := coverMidpoints[rng.Intn(len(coverMidpoints))]
	return []string{
		s.plot, s.date, s.easting, s.northing,
		formatFloat(sizeClass, 0), species, formatFloat(cover, -1),
		s.elevation, s.tci, s.streamDist, s.disturbance, s.solarRad,
	}
}

// pickSpecies samples k distinct names from the pool.
func pickSpecies(rng *rand.Rand, pool []string, k int) []string {
	idx := rng.Perm(len(pool))[:k]
	picked := make([]string, k)
	for i, j := range idx {
		picked[i] = pool[j]
	}
	return picked
}

// formatFloat renders a float with the given decimal precision; -1 uses
// the shortest exact representation.
func formatFloat(v float64, prec int) string {
	if prec < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
