package report

import (
	"context"
	"fmt"

	"edustats/pkg/admissions"
	"edustats/pkg/chart"
)

func (r *Runner) admissions(ctx context.Context) error {
	rates, err := admissions.RateByState(r.ds.Merged, r.states)
	if err != nil {
		return fmt.Errorf("admission rate by state: %w", err)
	}
	regions := make([]chart.Region, 0, len(rates))
	for _, s := range rates {
		regions = append(regions, chart.Region{Name: s.Name(), Shape: s.Boundary.Geometry, Value: s.Rate})
	}
	r.log.Info("admission rate by state", "states", len(rates))
	return r.render(ctx, []figure{
		mapFigure("admissions_rate.png", "Average Admissions Rate Per State", regions, chart.MapXMaxNarrow),
	})
}
