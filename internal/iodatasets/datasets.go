package iodatasets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegdata/vegmat/pkg/config"
	"github.com/vegdata/vegmat/pkg/datasets"
	"gopkg.in/yaml.v3"
)

type iodatasets struct {
	cfg *config.Config
}

func New(cfg *config.Config) datasets.Datasets {
	res := iodatasets{cfg: cfg}
	return &res
}

func (d *iodatasets) Load() (*datasets.DatasetsConfig, error) {
	datasetsPath := config.DatasetsFilePath(d.cfg.HomeDir)
	datasetsConfig, err := loadDatasetsConfig(datasetsPath, d.cfg.HomeDir)
	if err != nil {
		return nil, DatasetsConfigError(datasetsPath, err)
	}
	return datasetsConfig, nil
}

func loadDatasetsConfig(
	path, homeDir string,
) (*datasets.DatasetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read datasets config file: %w", err,
		)
	}

	var cfg datasets.DatasetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(
			"failed to parse datasets config: %w", err,
		)
	}

	// Expand home-relative paths before validation so error messages
	// show the real locations.
	for i := range cfg.Datasets {
		cfg.Datasets[i].Path = expandPath(cfg.Datasets[i].Path, homeDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validation is pure; the filesystem check belongs here.
	for _, ds := range cfg.Datasets {
		if ds.Path == "" {
			continue
		}
		if _, err := os.Stat(ds.Path); err != nil {
			return nil, fmt.Errorf(
				"dataset file does not exist: %s", ds.Path,
			)
		}
	}

	return &cfg, nil
}

// expandPath resolves a leading "~/" against the user's home directory.
func expandPath(p, homeDir string) string {
	if p == "~" {
		return homeDir
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir, p[2:])
	}
	return p
}
