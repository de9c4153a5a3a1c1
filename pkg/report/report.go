// Package report runs the analysis end to end: load the datasets, aggregate,
// render the figures and print the model scores.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"edustats/pkg/chart"
	"edustats/pkg/config"
	"edustats/pkg/data"
	"edustats/pkg/geo"
	"edustats/pkg/logger"
)

// Section is one group of research questions.
type Section string

const (
	Race         Section = "race"
	Demographics Section = "demographics"
	Admissions   Section = "admissions"
	ML           Section = "ml"
)

// AllSections is the default run, in output order.
var AllSections = []Section{Race, Demographics, Admissions, ML}

func ParseSection(s string) (Section, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sec := range AllSections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("report: unknown section %q", s)
}

// Runner holds the loaded inputs of one run.
type Runner struct {
	cfg    *config.Config
	log    *logger.Logger
	out    io.Writer
	runID  string
	ds     *data.Datasets
	states geo.States
}

// New returns a Runner over already loaded inputs.
func New(cfg *config.Config, log *logger.Logger, out io.Writer, ds *data.Datasets, states geo.States) *Runner {
	id := uuid.New().String()
	return &Runner{
		cfg:    cfg,
		log:    log.With("run_id", id),
		out:    out,
		runID:  id,
		ds:     ds,
		states: states,
	}
}

// Load reads every input named by cfg.
func Load(cfg *config.Config, log *logger.Logger, out io.Writer) (*Runner, error) {
	start := time.Now()
	p := cfg.Paths()
	ds, err := data.LoadAll(p, cfg.Data.Year)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	states, err := geo.Load(p.StatesPath())
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	r := New(cfg, log, out, ds, states)
	r.log.Info("inputs loaded",
		"dir", cfg.Data.Dir,
		"year", cfg.Data.Year,
		"institutions", ds.RacialYear.Nrow(),
		"ipeds_rows", ds.IPEDS.Nrow(),
		"recent_rows", ds.Recent.Nrow(),
		"states", len(states),
		"took", time.Since(start),
	)
	return r, nil
}

// RunID tags the log lines of this run.
func (r *Runner) RunID() string { return r.runID }

// Run executes sections in order, or all of them when none are given.
func (r *Runner) Run(ctx context.Context, sections ...Section) error {
	if len(sections) == 0 {
		sections = AllSections
	}
	if err := os.MkdirAll(r.cfg.Output.GraphsDir, 0o755); err != nil {
		return fmt.Errorf("create graphs dir: %w", err)
	}
	for _, sec := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		log := r.log.With("section", sec)
		log.Info("section started")

		var err error
		switch sec {
		case Race:
			err = r.race(ctx)
		case Demographics:
			err = r.demographics(ctx)
		case Admissions:
			err = r.admissions(ctx)
		case ML:
			err = r.ml(ctx)
		default:
			err = fmt.Errorf("report: unknown section %q", sec)
		}
		if err != nil {
			log.Error("section failed", "error", err)
			return fmt.Errorf("%s: %w", sec, err)
		}
		log.Info("section finished", "took", time.Since(start))
	}
	return nil
}

// figure is one PNG to render.
type figure struct {
	file  string
	w, h  vg.Length
	build func() (chart.Figure, error)
}

func newFigure(file string, build func() (chart.Figure, error)) figure {
	return figure{file: file, w: chart.Width, h: chart.Height, build: build}
}

// render builds and saves figs concurrently.
func (r *Runner) render(ctx context.Context, figs []figure) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, f := range figs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fig, err := f.build()
			if err != nil {
				return fmt.Errorf("%s: %w", f.file, err)
			}
			path := filepath.Join(r.cfg.Output.GraphsDir, f.file)
			if err := chart.Save(path, f.w, f.h, fig); err != nil {
				return err
			}
			r.log.Debug("figure written", "path", path)
			return nil
		})
	}
	return g.Wait()
}
