// Package iosurvey reads long-format survey observations from
// delimited files and PostgreSQL tables.
package iosurvey

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/vegdata/vegmat/pkg/datasets"
	"github.com/vegdata/vegmat/pkg/survey"
)

// progressThreshold is the file size in bytes above which a read
// shows a progress bar.
const progressThreshold = 1 << 20

type fileReader struct {
	ds   datasets.DatasetConfig
	jobs int
}

// NewFileReader returns a survey.Reader for a delimited observation
// file. Column names come from the dataset's column mapping; jobs
// bounds the parser pool during name canonicalization.
func NewFileReader(ds datasets.DatasetConfig, jobs int) survey.Reader {
	return &fileReader{ds: ds, jobs: jobs}
}

func (r *fileReader) Read(
	ctx context.Context,
) ([]survey.Observation, survey.ReadReport, error) {
	var report survey.ReadReport

	f, err := os.Open(r.ds.Path)
	if err != nil {
		return nil, report, OpenFileError(r.ds.Path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if info, err := f.Stat(); err == nil && info.Size() > progressThreshold {
		bar := pb.Full.Start64(info.Size())
		bar.Set(pb.Bytes, true)
		bar.Set("prefix", "Reading "+r.ds.Name+": ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		src = bar.NewProxyReader(f)
	}

	c := csv.NewReader(src)
	c.Comma = r.ds.DelimiterRune()

	header, err := c.Read()
	if err != nil {
		return nil, report, HeaderError(r.ds.Path, err)
	}

	idx, err := resolveColumns(header, r.ds)
	if err != nil {
		return nil, report, err
	}

	var obs []survey.Observation
	line := 1 // the header
	for {
		select {
		case <-ctx.Done():
			return nil, report, ctx.Err()
		default:
		}

		rec, err := c.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			// Structural damage is fatal; value problems below
			// only skip the row.
			return nil, report, FieldParseError(r.ds.Path, line, err)
		}

		report.Rows++
		o, ok := idx.observation(rec)
		if !ok {
			report.Skipped++
			slog.Warn("Skipping unparsable row",
				"dataset", r.ds.Name, "row", line)
			continue
		}
		obs = append(obs, o)
		report.Kept++
	}

	if report.Kept == 0 {
		return nil, report, EmptyError(r.ds.Path)
	}

	if r.ds.Canonical {
		if err := canonicalize(ctx, obs, &report, r.jobs); err != nil {
			return nil, report, err
		}
	}

	return obs, report, nil
}

// columnIndex holds the position of each observation field in the
// header, -1 for fields the source does not carry.
type columnIndex struct {
	plot, date, easting, northing, sizeClass  int
	species, cover                            int
	elevation, tci, streamDist, disturb, srad int
}

// resolveColumns maps header names to field positions. Plot, species
// and cover must be present; everything else is optional.
func resolveColumns(header []string, ds datasets.DatasetConfig) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	find := func(field string) int {
		if i, ok := pos[ds.Column(field)]; ok {
			return i
		}
		return -1
	}

	idx := &columnIndex{
		plot:       find("plot"),
		date:       find("date"),
		easting:    find("easting"),
		northing:   find("northing"),
		sizeClass:  find("size_class"),
		species:    find("species"),
		cover:      find("cover"),
		elevation:  find(survey.CovElevation),
		tci:        find(survey.CovTCI),
		streamDist: find(survey.CovStreamDist),
		disturb:    find(survey.CovDisturbance),
		srad:       find(survey.CovSolarRad),
	}

	required := []struct {
		field string
		pos   int
	}{
		{"plot", idx.plot},
		{"species", idx.species},
		{"cover", idx.cover},
	}
	for _, req := range required {
		if req.pos < 0 {
			return nil, ColumnMissingError(ds.Path, ds.Column(req.field))
		}
	}
	return idx, nil
}

// observation converts one record into an Observation. The second
// value is false when a required field is empty or a numeric field
// does not parse.
func (idx *columnIndex) observation(rec []string) (survey.Observation, bool) {
	var o survey.Observation
	ok := true

	text := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	// Key fields default to zero when the column or value is absent.
	number := func(i int) float64 {
		s := text(i)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ok = false
		}
		return v
	}
	// Covariates keep NaN for absent values so the matrix builder can
	// tell "not recorded" from a real zero.
	covariate := func(i int) float64 {
		s := text(i)
		if s == "" {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			ok = false
		}
		return v
	}

	o.Plot = text(idx.plot)
	o.Species = text(idx.species)
	if o.Plot == "" || o.Species == "" {
		return o, false
	}

	cover := text(idx.cover)
	if cover == "" {
		return o, false
	}
	v, err := strconv.ParseFloat(cover, 64)
	if err != nil {
		return o, false
	}
	o.Cover = v

	o.Date = text(idx.date)
	o.Easting = number(idx.easting)
	o.Northing = number(idx.northing)
	o.SizeClass = number(idx.sizeClass)
	o.Elevation = covariate(idx.elevation)
	o.TCI = covariate(idx.tci)
	o.StreamDist = covariate(idx.streamDist)
	o.Disturbance = text(idx.disturb)
	o.SolarRad = covariate(idx.srad)

	return o, ok
}
