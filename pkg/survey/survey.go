// Package survey defines long-format vegetation survey records.
//
// A survey table holds one row per species occurrence at a plot on a
// date. The same physical plot may be surveyed more than once; the
// sampling event, not the plot, is the unit downstream matrices are
// built around. This package has no I/O; readers for delimited files
// and relational tables live in internal/iosurvey.
package survey

import (
	"context"
	"strconv"
	"strings"
)

// Environmental covariate names. They double as column names of the
// environmental matrix, in CovariateNames order.
const (
	CovElevation   = "elevation"
	CovTCI         = "tci"
	CovStreamDist  = "stream_dist"
	CovDisturbance = "disturbance"
	CovSolarRad    = "solar_rad"
)

// CovariateNames lists environmental covariates in their canonical
// column order.
var CovariateNames = []string{
	CovElevation,
	CovTCI,
	CovStreamDist,
	CovDisturbance,
	CovSolarRad,
}

// Observation is one species occurrence recorded at a sampling event.
type Observation struct {
	// Plot is the plot identifier as it appears in the field records.
	Plot string

	// Date is the survey date, kept verbatim. It takes part in the
	// sample key, so two spellings of the same day produce two keys.
	Date string

	// Easting and Northing are UTM coordinates of the plot.
	Easting  float64
	Northing float64

	// SizeClass is the plot size class in square meters.
	SizeClass float64

	// Species is the species code.
	Species string

	// Cover is the abundance estimate, usually percent cover.
	Cover float64

	// Site-level covariates. Numeric ones use NaN for a value absent
	// from the source record.
	Elevation   float64
	TCI         float64
	StreamDist  float64
	Disturbance string
	SolarRad    float64
}

// SampleKey identifies one sampling event: one plot surveyed on one
// date at one location. Re-surveys of the same plot on other dates get
// distinct keys and are never collapsed together.
func (o Observation) SampleKey() string {
	parts := []string{
		o.Plot,
		o.Date,
		strconv.FormatFloat(o.Easting, 'f', -1, 64),
		strconv.FormatFloat(o.Northing, 'f', -1, 64),
	}
	return strings.Join(parts, "|")
}

// Covariate returns the numeric covariate with the given name. The
// second value is false for unknown names and for the factor covariate
// CovDisturbance, which has no numeric reading here.
func (o Observation) Covariate(name string) (float64, bool) {
	switch name {
	case CovElevation:
		return o.Elevation, true
	case CovTCI:
		return o.TCI, true
	case CovStreamDist:
		return o.StreamDist, true
	case CovSolarRad:
		return o.SolarRad, true
	}
	return 0, false
}

// IsFactor reports whether the named covariate is categorical.
func IsFactor(name string) bool {
	return name == CovDisturbance
}

// ReadReport summarizes one pass of a Reader over its source.
type ReadReport struct {
	// Rows is the number of data rows seen, header excluded.
	Rows int

	// Kept is the number of observations returned.
	Kept int

	// Skipped is the number of rows dropped for unparsable fields.
	Skipped int

	// Canonical is the number of species codes rewritten to their
	// canonical form during name normalization.
	Canonical int
}

// Reader loads observations from a backing store: a delimited file, a
// relational table. Implementations live in internal packages.
type Reader interface {
	// Read returns every observation of the source in source order.
	Read(ctx context.Context) ([]Observation, ReadReport, error)
}
