package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServeConfig struct {
	Address          string
	NodeID           string
	MineTimeout      time.Duration
	PeerTimeout      time.Duration
	MaxConcurrency   uint
	EnablePrometheus bool
	PrometheusAddr   string
}

func (c ServeConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("serve address cannot be empty")
	}
	if c.MineTimeout <= 0 {
		return fmt.Errorf("mine-timeout must be positive")
	}
	if c.PeerTimeout <= 0 {
		return fmt.Errorf("peer-timeout must be positive")
	}
	if c.MaxConcurrency == 0 {
		return fmt.Errorf("max-concurrency must be at least 1")
	}
	if c.EnablePrometheus && c.PrometheusAddr == "" {
		return fmt.Errorf("prometheus-addr cannot be empty when Prometheus is enabled")
	}
	return nil
}

func LoadServeConfigFromCLI() ServeConfig {
	return ServeConfig{
		Address:          viper.GetString("address"),
		NodeID:           viper.GetString("node-id"),
		MineTimeout:      viper.GetDuration("mine-timeout"),
		PeerTimeout:      viper.GetDuration("peer-timeout"),
		MaxConcurrency:   viper.GetUint("max-concurrency"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
