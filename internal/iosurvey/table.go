package iosurvey

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/jackc/pgx/v5"
	"github.com/vegdata/vegmat/pkg/datasets"
	"github.com/vegdata/vegmat/pkg/db"
	"github.com/vegdata/vegmat/pkg/survey"
)

type tableReader struct {
	op        db.Operator
	ds        datasets.DatasetConfig
	fetchSize int
	jobs      int
}

// NewTableReader returns a survey.Reader for observations kept in a
// PostgreSQL table. The operator must be connected before Read is
// called. fetchSize bounds how many rows travel per round trip.
func NewTableReader(
	op db.Operator,
	ds datasets.DatasetConfig,
	fetchSize, jobs int,
) survey.Reader {
	return &tableReader{op: op, ds: ds, fetchSize: fetchSize, jobs: jobs}
}

// observation fields in the order the SELECT list uses them.
var tableFields = []string{
	"plot", "date", "easting", "northing", "size_class",
	"species", "cover",
	survey.CovElevation, survey.CovTCI, survey.CovStreamDist,
	survey.CovDisturbance, survey.CovSolarRad,
}

func (r *tableReader) Read(
	ctx context.Context,
) ([]survey.Observation, survey.ReadReport, error) {
	var report survey.ReadReport

	if r.op == nil || r.op.Pool() == nil {
		return nil, report, NotConnectedError(r.ds.Table)
	}

	exists, err := r.op.TableExists(ctx, r.ds.Table)
	if err != nil {
		return nil, report, err
	}
	if !exists {
		return nil, report, TableNotFoundError(r.ds.Table)
	}

	present, err := r.tableColumns(ctx)
	if err != nil {
		return nil, report, err
	}

	// Same contract as the file reader: plot, species and cover are
	// required, the rest read as absent.
	fields, columns, err := r.selectList(present)
	if err != nil {
		return nil, report, err
	}

	total, err := r.countRows(ctx)
	if err != nil {
		return nil, report, err
	}

	var bar *pb.ProgressBar
	if total > progressThreshold/64 {
		bar = pb.Full.Start(total)
		bar.Set("prefix", "Reading "+r.ds.Name+": ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	obs, err := r.fetchAll(ctx, fields, columns, &report, bar)
	if err != nil {
		return nil, report, err
	}

	if report.Kept == 0 {
		return nil, report, EmptyError(r.ds.Table)
	}

	if r.ds.Canonical {
		if err := canonicalize(ctx, obs, &report, r.jobs); err != nil {
			return nil, report, err
		}
	}

	return obs, report, nil
}

// tableColumns returns the set of column names the survey table has.
func (r *tableReader) tableColumns(ctx context.Context) (map[string]bool, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1`

	rows, err := r.op.Pool().Query(ctx, query, r.ds.Table)
	if err != nil {
		return nil, QueryError(r.ds.Table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ScanRowError(r.ds.Table, err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(r.ds.Table, err)
	}
	return present, nil
}

// selectList resolves observation fields to the table's column names,
// dropping optional fields the table does not carry.
func (r *tableReader) selectList(
	present map[string]bool,
) (fields, columns []string, err error) {
	for _, field := range tableFields {
		col := r.ds.Column(field)
		if present[col] {
			fields = append(fields, field)
			columns = append(columns, pgx.Identifier{col}.Sanitize())
			continue
		}
		switch field {
		case "plot", "species", "cover":
			return nil, nil, ColumnMissingError(r.ds.Table, col)
		}
	}
	return fields, columns, nil
}

func (r *tableReader) countRows(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s",
		pgx.Identifier{r.ds.Table}.Sanitize())

	var total int
	err := r.op.Pool().QueryRow(ctx, query).Scan(&total)
	if err != nil {
		return 0, QueryError(r.ds.Table, err)
	}
	return total, nil
}

// fetchAll streams the table through a cursor, fetchSize rows per
// round trip.
func (r *tableReader) fetchAll(
	ctx context.Context,
	fields, columns []string,
	report *survey.ReadReport,
	bar *pb.ProgressBar,
) ([]survey.Observation, error) {
	fetchSize := r.fetchSize
	if fetchSize < 1 {
		fetchSize = 10_000
	}

	tx, err := r.op.Pool().Begin(ctx)
	if err != nil {
		return nil, QueryError(r.ds.Table, err)
	}
	defer tx.Rollback(ctx)

	cursor := fmt.Sprintf(
		"DECLARE survey_cur NO SCROLL CURSOR FOR SELECT %s FROM %s",
		strings.Join(columns, ", "),
		pgx.Identifier{r.ds.Table}.Sanitize(),
	)
	if _, err := tx.Exec(ctx, cursor); err != nil {
		return nil, QueryError(r.ds.Table, err)
	}

	var obs []survey.Observation
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch, scanned, err := r.fetchBatch(ctx, tx, fields, fetchSize, report, bar)
		if err != nil {
			return nil, err
		}
		obs = append(obs, batch...)
		if scanned < fetchSize {
			break
		}
	}
	return obs, nil
}

func (r *tableReader) fetchBatch(
	ctx context.Context,
	tx pgx.Tx,
	fields []string,
	fetchSize int,
	report *survey.ReadReport,
	bar *pb.ProgressBar,
) ([]survey.Observation, int, error) {
	rows, err := tx.Query(ctx,
		fmt.Sprintf("FETCH %d FROM survey_cur", fetchSize))
	if err != nil {
		return nil, 0, QueryError(r.ds.Table, err)
	}
	defer rows.Close()

	var batch []survey.Observation
	var scanned int
	for rows.Next() {
		scanned++
		report.Rows++
		if bar != nil {
			bar.Increment()
		}

		o, ok, err := scanObservation(rows, fields)
		if err != nil {
			return nil, scanned, ScanRowError(r.ds.Table, err)
		}
		if !ok {
			report.Skipped++
			slog.Warn("Skipping incomplete record",
				"dataset", r.ds.Name, "row", report.Rows)
			continue
		}
		batch = append(batch, o)
		report.Kept++
	}
	if err := rows.Err(); err != nil {
		return nil, scanned, QueryError(r.ds.Table, err)
	}
	return batch, scanned, nil
}

// scanObservation reads one row into an Observation. NULL text reads
// as empty, NULL key numbers as zero, NULL covariates as NaN. Rows
// with no plot, species or cover value report ok=false.
func scanObservation(
	rows pgx.Rows,
	fields []string,
) (survey.Observation, bool, error) {
	var o survey.Observation

	// Scan through pointer destinations so SQL NULL arrives as nil.
	texts := make(map[string]**string)
	numbers := make(map[string]**float64)
	dest := make([]any, len(fields))
	for i, field := range fields {
		switch field {
		case "plot", "date", "species", survey.CovDisturbance:
			p := new(*string)
			texts[field] = p
			dest[i] = p
		default:
			p := new(*float64)
			numbers[field] = p
			dest[i] = p
		}
	}

	if err := rows.Scan(dest...); err != nil {
		return o, false, err
	}

	text := func(field string) string {
		if p, ok := texts[field]; ok && *p != nil {
			return strings.TrimSpace(**p)
		}
		return ""
	}
	number := func(field string) float64 {
		if p, ok := numbers[field]; ok && *p != nil {
			return **p
		}
		return 0
	}
	covariate := func(field string) float64 {
		if p, ok := numbers[field]; ok && *p != nil {
			return **p
		}
		return math.NaN()
	}

	o.Plot = text("plot")
	o.Species = text("species")
	cover, hasCover := numbers["cover"]
	if o.Plot == "" || o.Species == "" || !hasCover || *cover == nil {
		return o, false, nil
	}
	o.Cover = **cover

	o.Date = text("date")
	o.Easting = number("easting")
	o.Northing = number("northing")
	o.SizeClass = number("size_class")
	o.Elevation = covariate(survey.CovElevation)
	o.TCI = covariate(survey.CovTCI)
	o.StreamDist = covariate(survey.CovStreamDist)
	o.Disturbance = text(survey.CovDisturbance)
	o.SolarRad = covariate(survey.CovSolarRad)

	return o, true, nil
}
