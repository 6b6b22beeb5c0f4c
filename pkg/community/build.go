package community

import (
	"maps"
	"math"
	"slices"

	"github.com/vegdata/vegmat/pkg/survey"
)

// covariateTol is the absolute tolerance for the covariate constancy
// check. Values of one sampling event that differ by more than this
// are a data fault, not measurement noise.
const covariateTol = 1e-9

// coverCell accumulates cover values of one (sampling event, species)
// group.
type coverCell struct {
	sum float64
	n   int
}

// envRecord holds the first-encountered covariates of a sampling
// event.
type envRecord struct {
	num    map[string]float64
	factor string
}

// Build turns a long-format observation table into a row-aligned pair
// of matrices. Filters run first, so rejected records contribute
// neither rows nor columns.
//
// The community matrix has one row per distinct sample key in order of
// first appearance and one column per distinct species code, sorted.
// A cell is the arithmetic mean of the cover values of its group;
// duplicate records per (event, species) are averaged, never summed.
// Species absent from an event get zero, the legitimate "not observed"
// value.
//
// The environmental matrix shares rows with the community matrix. A
// covariate value comes from the first record of its event; later
// records only confirm it. A conflicting or missing covariate aborts
// the build.
func Build(obs []survey.Observation, filters ...survey.Filter) (*Paired, error) {
	obs = survey.Apply(obs, filters...)
	if len(obs) == 0 {
		return nil, NoObservationsError()
	}

	var keys []string
	cells := make(map[string]map[string]*coverCell)
	speciesSet := make(map[string]struct{})
	env := make(map[string]*envRecord)

	for _, o := range obs {
		key := o.SampleKey()
		group, ok := cells[key]
		if !ok {
			group = make(map[string]*coverCell)
			cells[key] = group
			keys = append(keys, key)
			env[key] = firstRecord(o)
		} else if err := checkConstant(key, env[key], o); err != nil {
			return nil, err
		}

		speciesSet[o.Species] = struct{}{}
		cell, ok := group[o.Species]
		if !ok {
			cell = &coverCell{}
			group[o.Species] = cell
		}
		cell.sum += o.Cover
		cell.n++
	}

	for _, key := range keys {
		if err := checkComplete(key, env[key]); err != nil {
			return nil, err
		}
	}

	species := slices.Sorted(maps.Keys(speciesSet))
	comm, err := New(keys, species, nil)
	if err != nil {
		return nil, err
	}
	for i, key := range keys {
		for sp, cell := range cells[key] {
			j, _ := comm.ColIndex(sp)
			comm.data.Set(i, j, cell.sum/float64(cell.n))
		}
	}

	envMat, err := buildEnv(keys, env)
	if err != nil {
		return nil, err
	}

	return &Paired{Community: comm, Env: envMat}, nil
}

func firstRecord(o survey.Observation) *envRecord {
	rec := &envRecord{
		num:    make(map[string]float64, len(survey.CovariateNames)),
		factor: o.Disturbance,
	}
	for _, name := range survey.CovariateNames {
		if v, ok := o.Covariate(name); ok {
			rec.num[name] = v
		}
	}
	return rec
}

// checkConstant compares a later record of a sampling event against
// the first one. Covariates are assumed constant per event; the
// assumption is verified, not trusted.
func checkConstant(key string, rec *envRecord, o survey.Observation) error {
	for _, name := range survey.CovariateNames {
		cur, ok := o.Covariate(name)
		if !ok {
			continue
		}
		first := rec.num[name]
		if math.IsNaN(first) && math.IsNaN(cur) {
			continue
		}
		if math.IsNaN(first) != math.IsNaN(cur) ||
			math.Abs(first-cur) > covariateTol {
			return NewCovariateConflictError(key, name, first, cur)
		}
	}
	if o.Disturbance != rec.factor {
		return NewFactorConflictError(
			key, survey.CovDisturbance, rec.factor, o.Disturbance,
		)
	}
	return nil
}

// checkComplete rejects events whose covariates never got a value.
func checkComplete(key string, rec *envRecord) error {
	for _, name := range survey.CovariateNames {
		if survey.IsFactor(name) {
			continue
		}
		if math.IsNaN(rec.num[name]) {
			return NewCovariateMissingError(key, name)
		}
	}
	if rec.factor == "" {
		return NewCovariateMissingError(key, survey.CovDisturbance)
	}
	return nil
}

// buildEnv scatters first-wins covariates into a matrix with the same
// row order as the community matrix. The categorical disturbance class
// becomes a factor column: cells hold indices into a sorted level
// table.
func buildEnv(keys []string, env map[string]*envRecord) (*Matrix, error) {
	res, err := New(keys, survey.CovariateNames, nil)
	if err != nil {
		return nil, err
	}

	levelSet := make(map[string]struct{})
	for _, rec := range env {
		levelSet[rec.factor] = struct{}{}
	}
	levels := slices.Sorted(maps.Keys(levelSet))
	levelIndex := make(map[string]int, len(levels))
	for i, lv := range levels {
		levelIndex[lv] = i
	}

	for i, key := range keys {
		rec := env[key]
		for _, name := range survey.CovariateNames {
			j, _ := res.ColIndex(name)
			if survey.IsFactor(name) {
				res.data.Set(i, j, float64(levelIndex[rec.factor]))
				continue
			}
			res.data.Set(i, j, rec.num[name])
		}
	}
	if err = res.SetLevels(survey.CovDisturbance, levels); err != nil {
		return nil, err
	}
	return res, nil
}
