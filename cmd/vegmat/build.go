package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/internal/ioarchive"
	"github.com/vegdata/vegmat/internal/iodatasets"
	"github.com/vegdata/vegmat/internal/iodb"
	"github.com/vegdata/vegmat/internal/iosurvey"
	"github.com/vegdata/vegmat/pkg/archive"
	"github.com/vegdata/vegmat/pkg/community"
	"github.com/vegdata/vegmat/pkg/config"
	"github.com/vegdata/vegmat/pkg/datasets"
	"github.com/vegdata/vegmat/pkg/db"
	"github.com/vegdata/vegmat/pkg/survey"
	"github.com/vegdata/vegmat/pkg/transform"
)

// buildResult carries one dataset through a build.
type buildResult struct {
	ds      datasets.DatasetConfig
	paired  *community.Paired
	report  survey.ReadReport
	elapsed time.Duration
}

// selectDatasets loads datasets.yaml and picks the requested names,
// surfacing configuration warnings as they are found. An empty name
// list selects every dataset.
func selectDatasets(
	cfg *config.Config,
	names []string,
) ([]datasets.DatasetConfig, error) {
	dsConfig, err := iodatasets.New(cfg).Load()
	if err != nil {
		return nil, err
	}

	for _, w := range dsConfig.Warnings {
		gn.Warn(
			"Dataset <em>%s</em>, field <em>%s</em>: %s. %s.",
			w.Dataset, w.Field, w.Message, w.Suggestion,
		)
	}

	selected, warnings, err := dsConfig.Select(names)
	for _, w := range warnings {
		gn.Warn("%s", w)
	}
	if err != nil {
		return nil, err
	}
	return selected, nil
}

// connectOperator opens the shared pgx pool when at least one selected
// dataset reads from PostgreSQL. Callers must Close a non-nil operator.
func connectOperator(
	ctx context.Context,
	cfg *config.Config,
	selected []datasets.DatasetConfig,
) (db.Operator, error) {
	needsDB := false
	for _, ds := range selected {
		if ds.Table != "" {
			needsDB = true
			break
		}
	}
	if !needsDB {
		return nil, nil
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	return op, nil
}

// newReader picks the survey reader matching the dataset source.
func newReader(
	cfg *config.Config,
	ds datasets.DatasetConfig,
	op db.Operator,
) survey.Reader {
	if ds.Table != "" {
		return iosurvey.NewTableReader(
			op, ds, cfg.Database.FetchSize, cfg.JobsNumber,
		)
	}
	return iosurvey.NewFileReader(ds, cfg.JobsNumber)
}

// buildFilters assembles observation filters. A size class given on
// the command line wins over the dataset default.
func buildFilters(
	cfg *config.Config,
	ds datasets.DatasetConfig,
) []survey.Filter {
	var filters []survey.Filter
	sizeClass := ds.SizeClass
	if cfg.Build.SizeClass != nil {
		sizeClass = cfg.Build.SizeClass
	}
	if sizeClass != nil {
		filters = append(filters, survey.SizeClassIs(*sizeClass))
	}
	return filters
}

// buildPaired reads one dataset and assembles its aligned matrix pair.
// Alignment is always verified; a pair that fails verification never
// reaches the caller.
func buildPaired(
	ctx context.Context,
	cfg *config.Config,
	ds datasets.DatasetConfig,
	op db.Operator,
) (*community.Paired, survey.ReadReport, error) {
	obs, report, err := newReader(cfg, ds, op).Read(ctx)
	if err != nil {
		return nil, report, err
	}

	paired, err := community.Build(obs, buildFilters(cfg, ds)...)
	if err != nil {
		return nil, report, err
	}

	if err = paired.VerifyAlignment(); err != nil {
		return nil, report, err
	}
	return paired, report, nil
}

// buildOne builds the matrix pair of a single named dataset. The
// database connection, when one is needed, lives only for the duration
// of the read.
func buildOne(
	ctx context.Context,
	cfg *config.Config,
	name string,
) (buildResult, error) {
	var res buildResult

	selected, err := selectDatasets(cfg, []string{name})
	if err != nil {
		return res, err
	}

	op, err := connectOperator(ctx, cfg, selected)
	if err != nil {
		return res, err
	}
	if op != nil {
		defer op.Close()
	}

	start := time.Now()
	paired, report, err := buildPaired(ctx, cfg, selected[0], op)
	if err != nil {
		return res, err
	}

	return buildResult{
		ds:      selected[0],
		paired:  paired,
		report:  report,
		elapsed: time.Since(start),
	}, nil
}

// applyTransform runs the named community transformation; an empty
// name returns the matrix untouched.
func applyTransform(
	name string,
	m *community.Matrix,
) (*community.Matrix, error) {
	if name == "" {
		return m, nil
	}
	fn, err := transform.ByName(name)
	if err != nil {
		return nil, err
	}
	return fn(m)
}

// fill is the share of non-zero cells in a matrix.
func fill(m *community.Matrix) float64 {
	cells := m.Rows() * m.Cols()
	if cells == 0 {
		return 0
	}
	return float64(m.NonZero()) / float64(cells)
}

// openArchive opens the run archive. The archive is advisory, so a
// failure degrades to a warning and a nil archive.
func openArchive(cfg *config.Config) archive.Archive {
	path := config.ArchiveFilePath(cfg.HomeDir)
	arch, err := ioarchive.New(path)
	if err != nil {
		gn.Warn("The run archive at <em>%s</em> is not usable.", path)
		slog.Warn("Run archive disabled", "path", path, "error", err)
		return nil
	}
	return arch
}

// saveRun records an analysis in the archive when one is open. Archive
// failures never abort an analysis.
func saveRun(ctx context.Context, arch archive.Archive, run archive.Run) {
	if arch == nil {
		return
	}
	if err := arch.Save(ctx, run); err != nil {
		slog.Warn("Cannot archive run",
			"run", run.ID, "kind", run.Kind, "error", err)
	}
}
