package data

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Schema describes the columns an analysis expects from a dataset.
type Schema struct {
	Name    string
	Columns []string
	Types   map[string]series.Type // forced column types; others are detected
}

// Validate checks that every column of the schema is present in df.
func (s Schema) Validate(df dataframe.DataFrame) error {
	have := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	for _, c := range s.Columns {
		if _, ok := have[c]; !ok {
			return fmt.Errorf("%s: %w: %q", s.Name, ErrMissingColumn, c)
		}
	}
	return nil
}

// Load reads path and validates it against the schema.
func (s Schema) Load(path string) (dataframe.DataFrame, error) {
	df, err := ReadCSV(path, s.Types)
	if err != nil {
		return df, err
	}
	if err := s.Validate(df); err != nil {
		return df, err
	}
	return df, nil
}

// RaceCodes are the suffixes of the col_/mkt_/dif_ columns of the racial
// representation table. amind is American Indian, pacis Pacific Islander,
// twora two or more races.
var RaceCodes = []string{"white", "black", "asian", "hispa", "amind", "pacis", "twora"}

// SelectivityColumns are the one-hot selectivity indicators.
var SelectivityColumns = []string{"selective", "non_selective", "more_selective"}

// IPEDS column names.
const (
	IPEDSState        = "FIPS state code"
	IPEDSTotal        = "Total  enrollment"
	IPEDSWomen        = "Percent of total enrollment that are women"
	IPEDSTuition      = "Tuition and fees, 2013-14"
	IPEDSAdmissions   = "Admissions total"
	IPEDSApplicants   = "Applicants total"
	IPEDSInState      = "Number of first-time undergraduates - in-state"
	IPEDSOutOfState   = "Number of first-time undergraduates - out-of-state"
	IPEDSForeign      = "Number of first-time undergraduates - foreign countries"
	IPEDSPercentOfPfx = "Percent of total enrollment that are "
)

// SocioColumns are the scorecard columns used for the SAT regression.
var SocioColumns = []string{
	"FAMINC", "MD_FAMINC", "FIRST_GEN", "SAT_AVG", "UGDS_WHITE",
	"UGDS_BLACK", "UGDS_HISP", "UGDS_ASIAN", "UGDS_AIAN", "UGDS_NHPI",
}

func racialColumns() []string {
	cols := []string{"year", "inst_name", "fips_ipeds", "total_enrollment"}
	for _, prefix := range []string{"col_", "mkt_", "dif_"} {
		for _, r := range RaceCodes {
			cols = append(cols, prefix+r)
		}
	}
	return append(cols, SelectivityColumns...)
}

// RacialSchema is the college racial representation dataset.
var RacialSchema = Schema{
	Name:    "college_racial_rep",
	Columns: racialColumns(),
	Types: map[string]series.Type{
		"inst_name":  series.String,
		"fips_ipeds": series.String,
	},
}

// IPEDSSchema is the IPEDS institution dataset.
var IPEDSSchema = Schema{
	Name: "ipeds",
	Columns: []string{
		IPEDSState, IPEDSTotal, IPEDSWomen, IPEDSTuition,
		IPEDSAdmissions, IPEDSApplicants, IPEDSInState, IPEDSOutOfState, IPEDSForeign,
		IPEDSPercentOfPfx + "Black or African American",
		IPEDSPercentOfPfx + "Asian",
		IPEDSPercentOfPfx + "Hispanic/Latino",
		IPEDSPercentOfPfx + "White",
	},
	Types: map[string]series.Type{
		IPEDSState: series.String,
	},
}

// RecentSchema is the scorecard most-recent-cohorts dataset.
var RecentSchema = Schema{
	Name:    "most_recent_cohorts",
	Columns: append([]string{"INSTNM", "ST_FIPS", "ADM_RATE"}, SocioColumns...),
	Types: map[string]series.Type{
		"INSTNM": series.String,
	},
}
