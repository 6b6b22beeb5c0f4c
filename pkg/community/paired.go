package community

import "strconv"

// Paired couples a community matrix with its environmental matrix.
// Both share the same sampling events in the same row order; that
// pairing is what makes constrained ordination legitimate, so it is
// verified explicitly rather than assumed.
type Paired struct {
	// Community holds mean cover per sampling event and species.
	Community *Matrix

	// Env holds site covariates per sampling event.
	Env *Matrix

	verified bool
}

// VerifyAlignment compares the row-label sequences of the two matrices
// and fails loudly on the first divergence. Every downstream joint
// model depends on positional row correspondence, so a mismatch is
// fatal for the pair.
func (p *Paired) VerifyAlignment() error {
	comm := p.Community.RowLabels()
	env := p.Env.RowLabels()

	if len(comm) != len(env) {
		return NewAlignmentCountError(len(comm), len(env))
	}
	for i := range comm {
		if comm[i] != env[i] {
			return NewAlignmentError(i, comm[i], env[i])
		}
	}

	p.verified = true
	return nil
}

// Verified reports whether alignment has been checked successfully.
func (p *Paired) Verified() bool {
	return p.verified
}

// Renumber replaces the row labels of both matrices with the shared
// ordinal index "1".."n". It is a pure relabeling: positions never
// move, so cell (i, j) of either matrix is unchanged. Renumber runs
// the alignment check itself when it has not passed yet, so a
// misaligned pair cannot be renumbered into silence.
func (p *Paired) Renumber() error {
	if !p.verified {
		if err := p.VerifyAlignment(); err != nil {
			return err
		}
	}

	ordinal := make([]string, p.Community.Rows())
	for i := range ordinal {
		ordinal[i] = strconv.Itoa(i + 1)
	}
	p.Community.relabelRows(ordinal)
	p.Env.relabelRows(ordinal)
	return nil
}
