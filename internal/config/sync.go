package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mvh/mvh-sync/mvhsync"
)

type sync struct {
	Delay time.Duration `yaml:"delay" json:"delay" mapstructure:"delay"` // pause before each detail request
}

func (cfg sync) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("sync.delay", mvhsync.DefaultDelay)
}

func (cfg *sync) parseConfigValues() error {
	if cfg.Delay < 0 {
		return fmt.Errorf("bad sync.delay value '%s': must not be negative", cfg.Delay)
	}
	return nil
}
