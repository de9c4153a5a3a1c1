package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("missing.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.Year != 2017 || cfg.ML.TestRatio != 0.33 || cfg.ML.ForestTrees != 200 || cfg.ML.K != 10 {
		t.Fatalf("unexpected defaults %+v", cfg.ML)
	}
	races := cfg.DiversityRaces()
	if len(races) != 2 || races[0] != "white" || races[1] != "hispanic" {
		t.Fatalf("unexpected diversity races %v", races)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "edustats.yaml")
	yaml := "data:\n  dir: /srv/data\n  year: 2015\nml:\n  k: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("EDUSTATS_K", "7")
	t.Setenv("EDUSTATS_TEST_RATIO", "0.25")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.Dir != "/srv/data" || cfg.Data.Year != 2015 {
		t.Fatalf("yaml not applied: %+v", cfg.Data)
	}
	if cfg.ML.K != 7 || cfg.ML.TestRatio != 0.25 {
		t.Fatalf("env not applied: %+v", cfg.ML)
	}
	if got := cfg.Paths().StatesPath(); got != filepath.Join("/srv/data", "gz_2010_us_040_00_5m.json") {
		t.Fatalf("unexpected states path %s", got)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EDUSTATS_GRAPHS_DIR=out/plots\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("EDUSTATS_GRAPHS_DIR") })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.GraphsDir != "out/plots" {
		t.Fatalf("expected .env value, got %q", cfg.Output.GraphsDir)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	cases := map[string]string{
		"EDUSTATS_TEST_RATIO":   "0",
		"EDUSTATS_FOREST_TREES": "-1",
		"EDUSTATS_K":            "0",
		"EDUSTATS_TOP_N":        "abc",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := LoadConfig(""); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestProcessStructFields_Kinds(t *testing.T) {
	var s struct {
		Name  string  `env:"EDUSTATS_TEST_NAME"`
		Count int64   `env:"EDUSTATS_TEST_COUNT"`
		Ratio float64 `env:"EDUSTATS_TEST_RATIO_F"`
		Inner struct {
			Flag bool `env:"EDUSTATS_TEST_FLAG"`
		}
	}
	t.Setenv("EDUSTATS_TEST_NAME", "x")
	t.Setenv("EDUSTATS_TEST_COUNT", "42")
	t.Setenv("EDUSTATS_TEST_RATIO_F", "0.5")
	if err := processStructFields(&s); err != nil {
		t.Fatalf("process: %v", err)
	}
	if s.Name != "x" || s.Count != 42 || s.Ratio != 0.5 {
		t.Fatalf("unexpected fields %+v", s)
	}

	t.Setenv("EDUSTATS_TEST_FLAG", "true")
	if err := processStructFields(&s); err == nil {
		t.Fatalf("expected error for an unsupported field kind")
	}
}
