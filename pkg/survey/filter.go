package survey

// Filter is a predicate over observations. Filters run before matrix
// construction, so rejected records never contribute keys, species or
// covariates.
type Filter func(Observation) bool

// SizeClassIs keeps observations from plots of one size class.
func SizeClassIs(sizeClass float64) Filter {
	return func(o Observation) bool {
		return o.SizeClass == sizeClass
	}
}

// DisturbanceIs keeps observations with the given disturbance class.
func DisturbanceIs(class string) Filter {
	return func(o Observation) bool {
		return o.Disturbance == class
	}
}

// PlotIn keeps observations from the named plots.
func PlotIn(plots ...string) Filter {
	set := make(map[string]struct{}, len(plots))
	for _, p := range plots {
		set[p] = struct{}{}
	}
	return func(o Observation) bool {
		_, ok := set[o.Plot]
		return ok
	}
}

// And combines filters; all must pass.
func And(filters ...Filter) Filter {
	return func(o Observation) bool {
		for _, f := range filters {
			if !f(o) {
				return false
			}
		}
		return true
	}
}

// Apply returns the observations that pass every filter. A call with
// no filters returns the input unchanged.
func Apply(obs []Observation, filters ...Filter) []Observation {
	if len(filters) == 0 {
		return obs
	}
	res := make([]Observation, 0, len(obs))
	for _, o := range obs {
		ok := true
		for _, f := range filters {
			if !f(o) {
				ok = false
				break
			}
		}
		if ok {
			res = append(res, o)
		}
	}
	return res
}
