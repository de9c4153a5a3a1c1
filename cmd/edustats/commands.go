package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"edustats/pkg/config"
	"edustats/pkg/logger"
	"edustats/pkg/report"
)

type flags struct {
	config    string
	dataDir   string
	graphsDir string
	exportDir string
	format    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "edustats",
		Short:         "Exploratory analysis and models over U.S. higher-education datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.config, "config", "configs/edustats.yaml", "path to the YAML config")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "directory holding the input datasets")
	root.PersistentFlags().StringVar(&f.graphsDir, "graphs-dir", "", "directory the figures are written to")

	root.AddCommand(
		sectionCmd(f, "run", "Run every section", report.AllSections...),
		sectionCmd(f, "race", "Racial composition maps, diversity index and trends", report.Race),
		sectionCmd(f, "demographics", "Tuition, gender, first generation and residency figures", report.Demographics),
		sectionCmd(f, "admissions", "Admission rate by state", report.Admissions),
		sectionCmd(f, "ml", "Fit the selectivity classifiers and SAT regressors", report.ML),
		exportCmd(f),
	)
	return root
}

func sectionCmd(f *flags, use, short string, sections ...report.Section) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, log, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := r.Run(cmd.Context(), sections...); err != nil {
				log.Error("run failed", "error", err)
				return err
			}
			log.Info("run finished")
			return nil
		},
	}
}

func exportCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the derived tables as CSV or Arrow files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, log, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer log.Sync()
			paths, err := r.Export(cmd.Context())
			if err != nil {
				log.Error("export failed", "error", err)
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.exportDir, "out", "", "directory the tables are written to")
	cmd.Flags().StringVar(&f.format, "format", "", "csv or arrow")
	return cmd
}

// setup loads the config, applies flag overrides and reads the inputs.
func setup(cmd *cobra.Command, f *flags) (*report.Runner, *logger.Logger, error) {
	cfg, err := config.LoadConfig(f.config)
	if err != nil {
		return nil, nil, err
	}
	if f.dataDir != "" {
		cfg.Data.Dir = f.dataDir
	}
	if f.graphsDir != "" {
		cfg.Output.GraphsDir = f.graphsDir
	}
	if f.exportDir != "" {
		cfg.Output.ExportDir = f.exportDir
	}
	if f.format != "" {
		cfg.Output.ExportFormat = f.format
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	r, err := report.Load(cfg, log, cmd.OutOrStdout())
	if err != nil {
		log.Error("load failed", "error", err)
		log.Sync()
		return nil, nil, err
	}
	return r, log, nil
}
