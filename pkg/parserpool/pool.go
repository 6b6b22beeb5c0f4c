// Package parserpool provides a pool of gnparser instances for
// concurrent canonicalization of botanical names. This is a pure
// package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Pool reduces scientific names to their canonical form. Survey tables
// mix full names ("Plantago major L.") with herbarium codes; only the
// former parse, the latter stay verbatim.
type Pool interface {
	// Canonical returns the canonical simple form of a scientific
	// name. The second value is false when the string does not parse
	// as a name; the input comes back unchanged then. Safe for
	// concurrent use.
	Canonical(name string) (string, bool)

	// Close shuts down the parser pool and releases resources. After
	// calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU(). Vegetation surveys
// follow the botanical code, so a single botanical pool suffices.
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Canonical parses a name with a pooled parser. It blocks while every
// parser is busy.
func (p *PoolImpl) Canonical(name string) (string, bool) {
	parser := <-p.ch
	result := parser.ParseName(name)
	p.ch <- parser

	if !result.Parsed || result.Canonical == nil {
		return name, false
	}
	return result.Canonical.Simple, true
}

// Close shuts down the parser pool, closing the channel and draining
// any remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
