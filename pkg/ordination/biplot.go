package ordination

import (
	"fmt"
	"math"
)

// Scaling selects the biplot convention. The two conventions answer
// different questions and are not interchangeable: distances between
// sites are only meaningful under ScalingDistance, angles between
// descriptors only under ScalingCorrelation.
type Scaling int

const (
	// ScalingDistance (scaling 1) preserves Euclidean distances among
	// sites. Descriptor vectors are the unit eigenvectors; site scores
	// carry the variance.
	ScalingDistance Scaling = iota + 1

	// ScalingCorrelation (scaling 2) preserves correlations among
	// descriptors. Descriptor vectors are stretched by the square root
	// of their eigenvalues; site scores are standardized.
	ScalingCorrelation
)

// String implements fmt.Stringer.
func (s Scaling) String() string {
	switch s {
	case ScalingDistance:
		return "scaling 1 (distance)"
	case ScalingCorrelation:
		return "scaling 2 (correlation)"
	}
	return fmt.Sprintf("scaling %d", int(s))
}

// ParseScaling converts the conventional 1/2 notation into a Scaling.
func ParseScaling(v int) (Scaling, error) {
	switch v {
	case 1:
		return ScalingDistance, nil
	case 2:
		return ScalingCorrelation, nil
	}
	return 0, ScalingValueError(v)
}

// BiplotOptions selects the projection for Biplot. The zero value asks
// for a distance biplot of the first two components.
type BiplotOptions struct {
	Scaling Scaling

	// Axes are the 1-based components to display; the zero value means
	// components 1 and 2.
	Axes [2]int
}

// Point is a labeled position in the biplot plane.
type Point struct {
	Label string
	X, Y  float64
}

// BiplotLayout holds everything a renderer needs to draw a biplot:
// site points, descriptor arrow tips, axis labels with explained
// variance, and the equilibrium circle radius when the scaling has
// one.
type BiplotLayout struct {
	Scaling Scaling
	Axes    [2]int
	XLabel  string
	YLabel  string
	Sites   []Point
	Arrows  []Point

	// EquilibriumRadius is the radius under which a descriptor arrow
	// contributes less to the displayed plane than under a uniform
	// spread over all components. Only a distance biplot has one; it is
	// zero under ScalingCorrelation.
	EquilibriumRadius float64
}

// Biplot projects a fitted PCA onto two components under the chosen
// scaling convention.
func Biplot(p *PCA, opts BiplotOptions) (*BiplotLayout, error) {
	scaling := opts.Scaling
	if scaling == 0 {
		scaling = ScalingDistance
	}
	if scaling != ScalingDistance && scaling != ScalingCorrelation {
		return nil, ScalingValueError(int(scaling))
	}

	axes := opts.Axes
	if axes == [2]int{} {
		axes = [2]int{1, 2}
	}
	k := p.Components()
	for _, a := range axes {
		if a < 1 || a > k {
			return nil, AxisRangeError(a, k)
		}
	}
	if axes[0] == axes[1] {
		return nil, AxisRangeError(axes[1], k)
	}

	ax, ay := axes[0]-1, axes[1]-1
	eig := p.Eigenvalues()
	if scaling == ScalingCorrelation {
		// an eigenvalue at numerical zero cannot standardize scores
		total := p.TotalVariance()
		for _, a := range []int{ax, ay} {
			if eig[a] <= 0 || eig[a] < total*1e-12 {
				return nil, DegenerateAxisError(a + 1)
			}
		}
	}

	scores := p.Scores()
	vectors := p.Vectors()

	sites := make([]Point, 0, p.SampleSize())
	for i, label := range p.Sites() {
		x, y := scores.At(i, ax), scores.At(i, ay)
		if scaling == ScalingCorrelation {
			x /= math.Sqrt(eig[ax])
			y /= math.Sqrt(eig[ay])
		}
		sites = append(sites, Point{Label: label, X: x, Y: y})
	}

	arrows := make([]Point, 0, len(p.Descriptors()))
	for j, label := range p.Descriptors() {
		x, y := vectors.At(j, ax), vectors.At(j, ay)
		if scaling == ScalingCorrelation {
			x *= math.Sqrt(eig[ax])
			y *= math.Sqrt(eig[ay])
		}
		arrows = append(arrows, Point{Label: label, X: x, Y: y})
	}

	var radius float64
	if scaling == ScalingDistance {
		radius = math.Sqrt(2 / float64(len(p.Descriptors())))
	}

	props := p.Proportions()
	return &BiplotLayout{
		Scaling:           scaling,
		Axes:              axes,
		XLabel:            axisLabel(axes[0], props[ax]),
		YLabel:            axisLabel(axes[1], props[ay]),
		Sites:             sites,
		Arrows:            arrows,
		EquilibriumRadius: radius,
	}, nil
}

func axisLabel(axis int, proportion float64) string {
	return fmt.Sprintf("PC%d (%.1f%%)", axis, 100*proportion)
}
