package ordination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/pkg/ordination"
)

// summary is a hand-rolled Constrained for exercising the adjustment
// without fitting anything.
type summary struct {
	constrained float64
	total       float64
	rank        int
	n           int
}

func (s summary) ConstrainedInertia() float64   { return s.constrained }
func (s summary) UnconstrainedInertia() float64 { return s.total - s.constrained }
func (s summary) TotalInertia() float64         { return s.total }
func (s summary) Rank() int                     { return s.rank }
func (s summary) SampleSize() int               { return s.n }

func TestAdjustedR2(t *testing.T) {
	tests := []struct {
		name      string
		model     summary
		wantR2    float64
		wantR2Adj float64
	}{
		{
			name:      "half explained by one constraint",
			model:     summary{constrained: 4, total: 8, rank: 1, n: 10},
			wantR2:    0.5,
			wantR2Adj: 1 - 0.5*9.0/8,
		},
		{
			name:      "many constraints shrink hard",
			model:     summary{constrained: 6, total: 8, rank: 5, n: 10},
			wantR2:    0.75,
			wantR2Adj: 1 - 0.25*9.0/4,
		},
		{
			name:      "perfect fit stays perfect",
			model:     summary{constrained: 8, total: 8, rank: 2, n: 10},
			wantR2:    1,
			wantR2Adj: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ordination.AdjustedR2(tt.model)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantR2, report.R2, 1e-12)
			assert.InDelta(t, tt.wantR2Adj, report.R2Adj, 1e-12)
			assert.Equal(t, tt.model.rank, report.Rank)
			assert.Equal(t, tt.model.n, report.N)
		})
	}
}

// The adjusted value can go negative when constraints explain less
// than chance; that is a legitimate answer, not an error.
func TestAdjustedR2Negative(t *testing.T) {
	report, err := ordination.AdjustedR2(
		summary{constrained: 0.4, total: 8, rank: 3, n: 10},
	)
	require.NoError(t, err)
	assert.Less(t, report.R2Adj, 0.0)
}

func TestAdjustedR2Domain(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rank int
	}{
		{name: "denominator zero", n: 5, rank: 4},
		{name: "denominator negative", n: 5, rank: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ordination.AdjustedR2(
				summary{constrained: 4, total: 8, rank: tt.rank, n: tt.n},
			)
			require.Error(t, err)

			var domErr ordination.R2DomainError
			require.ErrorAs(t, err, &domErr)
			assert.Equal(t, tt.n, domErr.N)
			assert.Equal(t, tt.rank, domErr.Rank)
		})
	}
}

func TestAdjustedR2ZeroTotal(t *testing.T) {
	_, err := ordination.AdjustedR2(
		summary{constrained: 0, total: 0, rank: 1, n: 10},
	)
	assert.Error(t, err)
}
