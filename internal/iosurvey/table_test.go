package iosurvey_test

// Integration tests for the table reader need a PostgreSQL server.
// Configure it with VEGMAT_DATABASE_HOST, VEGMAT_DATABASE_PORT,
// VEGMAT_DATABASE_USER and VEGMAT_DATABASE_PASSWORD; the tests use the
// vegmat_test database. Run them with `go test`; `go test -short`
// skips everything that dials the server.

import (
	"context"
	"math"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/internal/iodb"
	"github.com/vegdata/vegmat/internal/iosurvey"
	"github.com/vegdata/vegmat/internal/iotesting"
	"github.com/vegdata/vegmat/pkg/datasets"
	"github.com/vegdata/vegmat/pkg/db"
	"github.com/vegdata/vegmat/pkg/errcode"
)

func TestTableReader_NotConnected(t *testing.T) {
	ds := datasets.DatasetConfig{Name: "t", Table: "observations"}

	t.Run("nil operator", func(t *testing.T) {
		_, _, err := iosurvey.NewTableReader(nil, ds, 0, 1).
			Read(context.Background())
		require.Error(t, err)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	})

	t.Run("operator without pool", func(t *testing.T) {
		op := iodb.NewPgxOperator()
		_, _, err := iosurvey.NewTableReader(op, ds, 0, 1).
			Read(context.Background())
		require.Error(t, err)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	})
}

// connectTestDB returns a connected operator and registers cleanup.
func connectTestDB(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = op.Close() })
	return op
}

// createSurveyTable drops, recreates and fills a survey table.
func createSurveyTable(
	t *testing.T, op db.Operator, table, schema string, rows []string,
) {
	t.Helper()
	ctx := context.Background()
	pool := op.Pool()

	_, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "CREATE TABLE "+table+" "+schema)
	require.NoError(t, err)
	for _, row := range rows {
		_, err = pool.Exec(ctx, "INSERT INTO "+table+" VALUES "+row)
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			"DROP TABLE IF EXISTS "+table)
	})
}

func TestTableReader_Read(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	op := connectTestDB(t)
	createSurveyTable(t, op, "test_survey_read",
		`(plot text, species text, cover numeric, elevation numeric)`,
		[]string{
			`('p1', 'ABIEFRA', 12.5, 1834)`,
			`('p1', 'PICERUB', 3, 1834)`,
			`('p2', 'ABIEFRA', 8, NULL)`,
			`('p2', NULL, 5, 1500)`,
			`('p3', 'TSUGCAN', NULL, 900)`,
		})

	ds := datasets.DatasetConfig{Name: "t", Table: "test_survey_read"}
	obs, report, err := iosurvey.NewTableReader(op, ds, 2, 1).
		Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Rows)
	assert.Equal(t, 3, report.Kept, "NULL species and NULL cover skip")
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, obs, 3)

	assert.Equal(t, "p1", obs[0].Plot)
	assert.Equal(t, "ABIEFRA", obs[0].Species)
	assert.InDelta(t, 12.5, obs[0].Cover, 1e-9)
	assert.InDelta(t, 1834.0, obs[0].Elevation, 1e-9)

	// NULL covariate arrives as NaN, columns the table lacks too.
	assert.True(t, math.IsNaN(obs[2].Elevation))
	assert.True(t, math.IsNaN(obs[0].TCI))

	// Key fields the table lacks read as zero values.
	assert.Equal(t, "", obs[0].Date)
	assert.Zero(t, obs[0].Easting)
}

func TestTableReader_ColumnMapping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	op := connectTestDB(t)
	createSurveyTable(t, op, "test_survey_mapped",
		`(plot_id text, spp_code text, cover_pct numeric)`,
		[]string{`('p1', 'ABIEFRA', 5)`},
	)

	ds := datasets.DatasetConfig{
		Name:  "mapped",
		Table: "test_survey_mapped",
		Columns: map[string]string{
			"plot":    "plot_id",
			"species": "spp_code",
			"cover":   "cover_pct",
		},
	}
	obs, report, err := iosurvey.NewTableReader(op, ds, 0, 1).
		Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Kept)
	require.Len(t, obs, 1)
	assert.Equal(t, "p1", obs[0].Plot)
	assert.Equal(t, "ABIEFRA", obs[0].Species)
}

func TestTableReader_TableNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	op := connectTestDB(t)

	ds := datasets.DatasetConfig{Name: "t", Table: "test_survey_missing"}
	_, _, err := iosurvey.NewTableReader(op, ds, 0, 1).
		Read(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBQueryError, gnErr.Code)
}

func TestTableReader_MissingRequiredColumn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	op := connectTestDB(t)
	createSurveyTable(t, op, "test_survey_nocover",
		`(plot text, species text)`,
		[]string{`('p1', 'ABIEFRA')`},
	)

	ds := datasets.DatasetConfig{Name: "t", Table: "test_survey_nocover"}
	_, _, err := iosurvey.NewTableReader(op, ds, 0, 1).
		Read(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SurveyColumnMissingError, gnErr.Code)
	assert.Contains(t, gnErr.Vars, "cover")
}

func TestTableReader_Empty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	op := connectTestDB(t)
	createSurveyTable(t, op, "test_survey_empty",
		`(plot text, species text, cover numeric)`, nil)

	ds := datasets.DatasetConfig{Name: "t", Table: "test_survey_empty"}
	_, _, err := iosurvey.NewTableReader(op, ds, 0, 1).
		Read(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SurveyEmptyError, gnErr.Code)
}
