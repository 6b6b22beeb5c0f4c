package ordination

// Constrained is the summary any constrained ordination exposes:
// enough to judge how much of the total variance the constraints
// explain and at what cost in degrees of freedom.
type Constrained interface {
	ConstrainedInertia() float64
	UnconstrainedInertia() float64
	TotalInertia() float64
	Rank() int
	SampleSize() int
}

// R2Report carries the raw and adjusted share of variance a
// constrained model explains.
type R2Report struct {
	R2    float64
	R2Adj float64
	Rank  int
	N     int
}

// AdjustedR2 computes Ezekiel's adjusted R² for a constrained model:
// the raw share of explained inertia, shrunk by the degrees of freedom
// the constraints consume. The raw R² always grows when constraints
// are added; the adjusted value is the one to compare models by.
func AdjustedR2(model Constrained) (R2Report, error) {
	n, rank := model.SampleSize(), model.Rank()
	if n-rank-1 <= 0 {
		return R2Report{}, NewR2DomainError(n, rank)
	}
	total := model.TotalInertia()
	if total <= 0 {
		return R2Report{}, NoVarianceError("adjusted r2")
	}

	r2 := model.ConstrainedInertia() / total
	r2adj := 1 - (1-r2)*float64(n-1)/float64(n-rank-1)
	return R2Report{R2: r2, R2Adj: r2adj, Rank: rank, N: n}, nil
}
