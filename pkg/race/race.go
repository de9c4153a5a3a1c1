// Package race computes racial composition aggregates from the college
// racial representation dataset.
//
// The dataset carries three families of per-race columns:
//
//	col_RACE  percent of an institution's enrolled students of that race
//	mkt_RACE  percent of the state's college-age population of that race
//	dif_RACE  col_RACE - mkt_RACE
package race

import (
	"fmt"
	"strings"
)

// Race is one of the seven reported categories.
type Race int

const (
	White Race = iota
	Black
	Asian
	Hispanic
	AmericanIndian
	PacificIslander
	TwoOrMore
)

// All lists the categories in column order.
var All = []Race{White, Black, Asian, Hispanic, AmericanIndian, PacificIslander, TwoOrMore}

var (
	codes  = [...]string{"white", "black", "asian", "hispa", "amind", "pacis", "twora"}
	keys   = [...]string{"white", "black", "asian", "hispanic", "amind", "pacis", "twora"}
	labels = [...]string{"White", "Black", "Asian", "Hispanic", "American Indian", "Pacific Islander", "2+ Races"}
)

// Code is the column suffix, e.g. "hispa".
func (r Race) Code() string { return codes[r] }

// Key is the name used for output files and tables, e.g. "hispanic".
func (r Race) Key() string { return keys[r] }

// Label is the human readable name.
func (r Race) Label() string { return labels[r] }

func (r Race) String() string { return r.Key() }

// Parse accepts a code, key or label, case-insensitively.
func Parse(s string) (Race, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range All {
		if s == codes[r] || s == keys[r] || s == strings.ToLower(labels[r]) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("race: unknown category %q", s)
}

// Composition holds one value per category, indexed by Race.
type Composition [7]float64

// Minority sums every category except White.
func (c Composition) Minority() float64 {
	s := 0.0
	for _, r := range All {
		if r != White {
			s += c[r]
		}
	}
	return s
}

// Scale multiplies every category by f.
func (c Composition) Scale(f float64) Composition {
	var out Composition
	for i := range c {
		out[i] = c[i] * f
	}
	return out
}
