// Package archive defines the record of past analysis runs.
//
// Every matrix build and every ordination can be archived locally so a
// result stays reproducible after the survey source changes. The
// SQLite-backed implementation lives in internal/ioarchive.
package archive

import (
	"context"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/vegdata/vegmat/pkg/community"
)

// Run kinds the archive records.
const (
	KindMatrix = "matrix"
	KindPCA    = "pca"
	KindRDA    = "rda"
)

// Run is one archived analysis.
type Run struct {
	// ID is the run's stable v5 UUID, see NewID.
	ID string

	// Kind is KindMatrix, KindPCA or KindRDA.
	Kind string

	// Dataset is the dataset name the run was built from.
	Dataset string

	// CreatedAt is when the run finished.
	CreatedAt time.Time

	// Rows and Cols are the community matrix dimensions.
	Rows int
	Cols int

	// Transform names the transformation applied before ordination,
	// empty for raw covers.
	Transform string

	// Metrics holds the run's key numbers: matrix fill, variance
	// explained, adjusted R2. Keys depend on Kind.
	Metrics map[string]float64

	// Payload carries the matrices themselves. List leaves it nil;
	// only Save reads it.
	Payload *Payload
}

// Payload is the gob-encoded matrix content of a run.
type Payload struct {
	Community community.Snapshot

	// Env is nil for runs without an environmental matrix.
	Env *community.Snapshot
}

// NewID returns the stable v5 UUID for a run. The same kind, dataset
// and timestamp always produce the same ID.
func NewID(kind, dataset string, ts time.Time) string {
	seed := kind + "|" + dataset + "|" + ts.UTC().Format(time.RFC3339)
	return gnuuid.New(seed).String()
}

// Archive stores and lists analysis runs. Implementations must be safe
// for use from concurrent dataset builds.
type Archive interface {
	// Save records a run. The caller treats a failure as a warning,
	// never as a reason to abort the analysis itself.
	Save(ctx context.Context, run Run) error

	// List returns all runs, newest first, without payloads.
	List(ctx context.Context) ([]Run, error)

	// Close releases the backing store.
	Close() error
}
