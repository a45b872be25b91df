// Package strpool implements a small string-interning pool: a
// hashtable.DenseMap[uint64, string] keyed by content hash, backed by a
// strings.Builder for the backing storage of interned values.
//
// It is a standalone helper; no other CCL package imports it.
//
// © 2025 ccl authors. MIT License.
package strpool

import (
	"strings"

	"github.com/Voskan/ccl/internal/xhash"
	"github.com/Voskan/ccl/pkg/hashtable"
)

// Pool interns strings, handing back a stable uint64 handle for equal
// content.
type Pool struct {
	byHash *hashtable.DenseMap[uint64, string]
	b      strings.Builder
}

// New constructs an empty string pool.
func New() *Pool {
	return &Pool{byHash: hashtable.NewDenseMap[uint64, string]()}
}

// Intern returns a stable handle for s, storing s only the first time a
// given hash is seen.
func (p *Pool) Intern(s string) uint64 {
	h := xhash.String(s)
	if !p.byHash.Contains(h) {
		start := p.b.Len()
		p.b.WriteString(s)
		p.byHash.Insert(h, p.b.String()[start:])
	}
	return h
}

// Lookup returns the interned string for a handle previously returned by
// Intern.
func (p *Pool) Lookup(h uint64) (string, bool) {
	v, err := p.byHash.At(h)
	return v, err == nil
}

// Len returns the number of distinct interned strings.
func (p *Pool) Len() int { return p.byHash.Len() }
