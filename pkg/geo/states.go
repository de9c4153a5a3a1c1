// Package geo loads U.S. state boundaries and pairs them with per-state
// aggregates.
package geo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoStates is returned when a boundary file has no usable features.
var ErrNoStates = errors.New("geo: no state features")

// State is one boundary feature of the census state file.
type State struct {
	GeoID    string
	FIPS     int
	Name     string
	Geometry orb.MultiPolygon
}

// States keeps the order of the source file.
type States []*State

// Load reads a GeoJSON FeatureCollection of states.
func Load(path string) (States, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	states, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return states, nil
}

// Decode parses a GeoJSON FeatureCollection. Features need a NAME property;
// STATE is the zero-padded FIPS code.
func Decode(r io.Reader) (States, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}

	out := make(States, 0, len(fc.Features))
	for _, f := range fc.Features {
		name := f.Properties.MustString("NAME", "")
		if name == "" {
			continue
		}
		s := &State{
			GeoID: f.Properties.MustString("GEO_ID", ""),
			Name:  name,
		}
		if code := strings.TrimSpace(f.Properties.MustString("STATE", "")); code != "" {
			fips, err := strconv.Atoi(code)
			if err != nil {
				return nil, fmt.Errorf("state %q: bad STATE code %q", name, code)
			}
			s.FIPS = fips
		}
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			s.Geometry = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			s.Geometry = g
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrNoStates
	}
	return out, nil
}

// ByName finds a state by its full name.
func (ss States) ByName(name string) *State {
	for _, s := range ss {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// ByFIPS finds a state by numeric FIPS code.
func (ss States) ByFIPS(fips int) *State {
	for _, s := range ss {
		if s.FIPS == fips {
			return s
		}
	}
	return nil
}
