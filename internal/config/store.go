package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// store contains the options for the local output tree (index.json and apps/).
type store struct {
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
}

func (cfg store) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("store.dir", defaultStoreDir())
}

func (cfg *store) parseConfigValues() error {
	if cfg.Dir == "" {
		cfg.Dir = defaultStoreDir()
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return err
	}
	cfg.Dir = dir
	return nil
}

// defaultStoreDir is the "api" directory next to the directory holding the executable.
func defaultStoreDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "api"
	}
	return filepath.Join(filepath.Dir(exe), "..", "api")
}
