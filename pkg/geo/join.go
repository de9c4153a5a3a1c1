package geo

// JoinKind selects which side of a state join survives unmatched keys.
type JoinKind int

const (
	// Inner keeps matched keys only, in boundary-file order.
	Inner JoinKind = iota
	// Right keeps every aggregate key in aggregate order; State is nil when
	// no boundary matches.
	Right
)

// Match pairs an aggregate row with its boundary.
type Match struct {
	Row   int
	State *State
}

// JoinNames pairs aggregate rows keyed by state name with boundaries.
func (ss States) JoinNames(keys []string, how JoinKind) []Match {
	return ss.join(len(keys), how, func(s *State, row int) bool { return s.Name == keys[row] })
}

// JoinFIPS pairs aggregate rows keyed by FIPS code with boundaries.
func (ss States) JoinFIPS(keys []int, how JoinKind) []Match {
	return ss.join(len(keys), how, func(s *State, row int) bool { return s.FIPS == keys[row] })
}

func (ss States) join(n int, how JoinKind, eq func(*State, int) bool) []Match {
	var out []Match
	switch how {
	case Right:
		for row := 0; row < n; row++ {
			m := Match{Row: row}
			for _, s := range ss {
				if eq(s, row) {
					m.State = s
					break
				}
			}
			out = append(out, m)
		}
	default:
		for _, s := range ss {
			for row := 0; row < n; row++ {
				if eq(s, row) {
					out = append(out, Match{Row: row, State: s})
				}
			}
		}
	}
	return out
}
