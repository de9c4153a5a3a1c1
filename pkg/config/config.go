// Package config loads run settings from YAML, a .env file and the
// environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"edustats/pkg/data"
)

type Config struct {
	Data struct {
		Dir           string `yaml:"dir" env:"EDUSTATS_DATA_DIR"`
		IPEDS         string `yaml:"ipeds" env:"EDUSTATS_IPEDS_FILE"`
		RacialRep     string `yaml:"racial_rep" env:"EDUSTATS_RACIAL_FILE"`
		RecentCohorts string `yaml:"recent_cohorts" env:"EDUSTATS_RECENT_FILE"`
		States        string `yaml:"states" env:"EDUSTATS_STATES_FILE"`
		Year          int    `yaml:"year" env:"EDUSTATS_YEAR"`
	} `yaml:"data"`

	Output struct {
		GraphsDir    string `yaml:"graphs_dir" env:"EDUSTATS_GRAPHS_DIR"`
		ExportDir    string `yaml:"export_dir" env:"EDUSTATS_EXPORT_DIR"`
		ExportFormat string `yaml:"export_format" env:"EDUSTATS_EXPORT_FORMAT"`
	} `yaml:"output"`

	Log struct {
		Mode  string `yaml:"mode" env:"EDUSTATS_LOG_MODE"`
		Level string `yaml:"level" env:"EDUSTATS_LOG_LEVEL"`
	} `yaml:"log"`

	Analysis struct {
		// DiversityRaces is a comma separated race list for the diversity index.
		DiversityRaces string `yaml:"diversity_races" env:"EDUSTATS_DIVERSITY_RACES"`
		TopN           int    `yaml:"top_n" env:"EDUSTATS_TOP_N"`
		SinceYear      int    `yaml:"since_year" env:"EDUSTATS_SINCE_YEAR"`
	} `yaml:"analysis"`

	ML struct {
		TestRatio      float64 `yaml:"test_ratio" env:"EDUSTATS_TEST_RATIO"`
		Seed           int64   `yaml:"seed" env:"EDUSTATS_SEED"`
		ForestTrees    int     `yaml:"forest_trees" env:"EDUSTATS_FOREST_TREES"`
		ForestSeed     int64   `yaml:"forest_seed" env:"EDUSTATS_FOREST_SEED"`
		RegForestTrees int     `yaml:"reg_forest_trees" env:"EDUSTATS_REG_FOREST_TREES"`
		RegForestSeed  int64   `yaml:"reg_forest_seed" env:"EDUSTATS_REG_FOREST_SEED"`
		K              int     `yaml:"k" env:"EDUSTATS_K"`
	} `yaml:"ml"`
}

// LoadConfig reads configPath if it exists, then a .env file in the working
// directory, then environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.Data.Dir = "data"
	config.Data.IPEDS = "IPEDS_data.csv"
	config.Data.RacialRep = "college_racial_rep.csv"
	config.Data.RecentCohorts = "Most_recent_cohorts_institution_filtered.csv"
	config.Data.States = "gz_2010_us_040_00_5m.json"
	config.Data.Year = 2017

	config.Output.GraphsDir = "graphs"
	config.Output.ExportDir = "exports"
	config.Output.ExportFormat = "csv"

	config.Log.Mode = "development"
	config.Log.Level = "info"

	config.Analysis.DiversityRaces = "white,hispanic"
	config.Analysis.TopN = 5
	config.Analysis.SinceYear = 2010

	config.ML.TestRatio = 0.33
	config.ML.Seed = 50
	config.ML.ForestTrees = 200
	config.ML.ForestSeed = 70
	config.ML.RegForestTrees = 100
	config.ML.RegForestSeed = 50
	config.ML.K = 10
}

func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.ML.TestRatio <= 0 || c.ML.TestRatio >= 1 {
		return fmt.Errorf("test ratio must be in (0, 1), got %v", c.ML.TestRatio)
	}
	if c.ML.ForestTrees <= 0 || c.ML.RegForestTrees <= 0 {
		return fmt.Errorf("forest tree counts must be positive")
	}
	if c.ML.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.ML.K)
	}
	if c.Analysis.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.Analysis.TopN)
	}
	return nil
}

// Paths resolves the dataset locations.
func (c *Config) Paths() data.Paths {
	return data.Paths{
		Dir:           c.Data.Dir,
		IPEDS:         c.Data.IPEDS,
		RacialRep:     c.Data.RacialRep,
		RecentCohorts: c.Data.RecentCohorts,
		States:        c.Data.States,
	}
}

// DiversityRaces splits the configured race list.
func (c *Config) DiversityRaces() []string {
	var out []string
	for _, s := range strings.Split(c.Analysis.DiversityRaces, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
