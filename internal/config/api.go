package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/mvh/mvh-sync/internal"
	"github.com/mvh/mvh-sync/mvhsync/client"
)

// api contains the options for reaching the remote app API.
type api struct {
	URL                   string        `yaml:"url" json:"url" mapstructure:"url"`
	Key                   string        `yaml:"key" json:"key" mapstructure:"key"`
	UserAgent             string        `yaml:"user-agent" json:"user-agent" mapstructure:"user-agent"`
	InsecureSkipTLSVerify bool          `yaml:"insecure-skip-tls-verify" json:"insecure-skip-tls-verify" mapstructure:"insecure-skip-tls-verify"`
	CACert                string        `yaml:"ca-cert" json:"ca-cert" mapstructure:"ca-cert"`
	Timeout               time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
	FollowRedirects       bool          `yaml:"follow-redirects" json:"follow-redirects" mapstructure:"follow-redirects"`
}

func (cfg api) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("api.url", internal.DefaultAPIURL)
	v.SetDefault("api.key", internal.DefaultAPIKey)
	v.SetDefault("api.user-agent", internal.DefaultUserAgent)
	v.SetDefault("api.insecure-skip-tls-verify", true)
	v.SetDefault("api.ca-cert", "")
	v.SetDefault("api.timeout", 0)
	v.SetDefault("api.follow-redirects", true)
}

func (cfg api) ToClientConfig() client.Config {
	return client.Config{
		BaseURL:            cfg.URL,
		APIKey:             cfg.Key,
		UserAgent:          cfg.UserAgent,
		InsecureSkipVerify: cfg.InsecureSkipTLSVerify,
		CACert:             cfg.CACert,
		Timeout:            cfg.Timeout,
		FollowRedirects:    cfg.FollowRedirects,
	}
}
