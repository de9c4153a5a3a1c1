package data

import (
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
)

// Paths locates the input files.
type Paths struct {
	Dir           string
	IPEDS         string
	RacialRep     string
	RecentCohorts string
	States        string
}

func (p Paths) join(name string) string {
	if filepath.IsAbs(name) || p.Dir == "" {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// StatesPath is the location of the state boundary file.
func (p Paths) StatesPath() string { return p.join(p.States) }

// Datasets holds every table one run works on.
type Datasets struct {
	IPEDS      dataframe.DataFrame
	Racial     dataframe.DataFrame // every year
	RacialYear dataframe.DataFrame // the analysed year only
	Recent     dataframe.DataFrame
	Merged     dataframe.DataFrame // RacialYear left-joined with Recent on institution name
}

// LoadAll reads the three CSV datasets, filters the racial table to year and
// builds the institution-level join.
func LoadAll(p Paths, year int) (*Datasets, error) {
	ipeds, err := IPEDSSchema.Load(p.join(p.IPEDS))
	if err != nil {
		return nil, err
	}
	racial, err := RacialSchema.Load(p.join(p.RacialRep))
	if err != nil {
		return nil, err
	}
	recent, err := RecentSchema.Load(p.join(p.RecentCohorts))
	if err != nil {
		return nil, err
	}
	return Assemble(ipeds, racial, recent, year)
}

// Assemble derives the year slice and the merged table from loaded tables.
func Assemble(ipeds, racial, recent dataframe.DataFrame, year int) (*Datasets, error) {
	racialYear, err := FilterEq(racial, "year", year)
	if err != nil {
		return nil, err
	}
	merged, err := LeftJoin(racialYear, recent, "inst_name", "INSTNM")
	if err != nil {
		return nil, err
	}
	return &Datasets{
		IPEDS:      ipeds,
		Racial:     racial,
		RacialYear: racialYear,
		Recent:     recent,
		Merged:     merged,
	}, nil
}
