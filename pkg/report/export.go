package report

import (
	"context"
	"fmt"
	"os"

	"edustats/pkg/admissions"
	"edustats/pkg/demographics"
	"edustats/pkg/export"
	"edustats/pkg/race"
)

func compositionTable(name string, rows []race.StateComposition, minority bool) export.Table {
	states := make([]string, len(rows))
	for i, s := range rows {
		states[i] = s.State
	}
	t := export.Table{Name: name, Columns: []export.Column{{Name: "state", Strings: states}}}
	for _, rc := range race.All {
		vals := make([]float64, len(rows))
		for i, s := range rows {
			vals[i] = s.Composition[rc]
		}
		t.Columns = append(t.Columns, export.Column{Name: rc.Key(), Floats: vals})
	}
	if minority {
		vals := make([]float64, len(rows))
		for i, s := range rows {
			vals[i] = s.Minority()
		}
		t.Columns = append(t.Columns, export.Column{Name: "minority", Floats: vals})
	}
	return t
}

// Tables derives the per-state, per-institution and per-year tables behind
// the figures.
func (r *Runner) Tables() ([]export.Table, error) {
	df := r.ds.RacialYear
	var tables []export.Table

	percent, err := race.PercentByState(df, r.states)
	if err != nil {
		return nil, err
	}
	market, err := race.MarketShareByState(df, r.states)
	if err != nil {
		return nil, err
	}
	diff, err := race.EnrollmentDiffByState(df, r.states)
	if err != nil {
		return nil, err
	}
	tables = append(tables,
		compositionTable("state_race_percent", percent, true),
		compositionTable("state_market_share", market, true),
		compositionTable("state_market_diff", diff, false),
	)

	subset, err := r.diversityRaces()
	if err != nil {
		return nil, err
	}
	insts, err := race.DiversityIndex(df, subset)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(insts))
	instStates := make([]string, len(insts))
	index := make([]float64, len(insts))
	for i, inst := range insts {
		names[i], instStates[i], index[i] = inst.Name, inst.State, inst.Index
	}
	tables = append(tables, export.Table{Name: "diversity_index", Columns: []export.Column{
		{Name: "inst_name", Strings: names},
		{Name: "state", Strings: instStates},
		{Name: "diversity_index", Floats: index},
	}})

	years, err := race.ByYear(r.ds.Racial)
	if err != nil {
		return nil, err
	}
	yt := export.Table{Name: "race_by_year"}
	yv := make([]float64, len(years))
	total := make([]float64, len(years))
	for i, y := range years {
		yv[i], total[i] = float64(y.Year), y.TotalEnrollment
	}
	yt.Columns = append(yt.Columns,
		export.Column{Name: "year", Floats: yv},
		export.Column{Name: "total_enrollment", Floats: total},
	)
	for _, rc := range race.All {
		vals := make([]float64, len(years))
		for i, y := range years {
			vals[i] = y.Composition[rc]
		}
		yt.Columns = append(yt.Columns, export.Column{Name: rc.Key(), Floats: vals})
	}
	tables = append(tables, yt)

	gender, err := demographics.GenderShares(r.ds.IPEDS)
	if err != nil {
		return nil, err
	}
	gs := make([]string, len(gender))
	women := make([]float64, len(gender))
	men := make([]float64, len(gender))
	for i, g := range gender {
		gs[i], women[i], men[i] = g.State, g.Women, g.Men
	}
	tables = append(tables, export.Table{Name: "gender_by_state", Columns: []export.Column{
		{Name: "state", Strings: gs},
		{Name: "women", Floats: women},
		{Name: "men", Floats: men},
	}})

	rates, err := admissions.RateByState(r.ds.Merged, r.states)
	if err != nil {
		return nil, err
	}
	rs := make([]string, len(rates))
	fips := make([]float64, len(rates))
	rate := make([]float64, len(rates))
	for i, s := range rates {
		rs[i], fips[i], rate[i] = s.Name(), float64(s.FIPS), s.Rate
	}
	tables = append(tables, export.Table{Name: "admissions_by_state", Columns: []export.Column{
		{Name: "state", Strings: rs},
		{Name: "fips", Floats: fips},
		{Name: "adm_rate", Floats: rate},
	}})
	return tables, nil
}

// Export writes every derived table to the configured directory and returns
// the written paths.
func (r *Runner) Export(ctx context.Context) ([]string, error) {
	format, err := export.ParseFormat(r.cfg.Output.ExportFormat)
	if err != nil {
		return nil, err
	}
	tables, err := r.Tables()
	if err != nil {
		return nil, fmt.Errorf("derive tables: %w", err)
	}
	if err := os.MkdirAll(r.cfg.Output.ExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := export.Write(r.cfg.Output.ExportDir, t, format)
		if err != nil {
			return paths, err
		}
		r.log.Info("table exported", "table", t.Name, "rows", t.Rows(), "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
