package conf

import (
	"fmt"

	"github.com/lithodb/lithodb/errors"
)

const (
	DefaultNumShards       = 16
	DefaultScanBatchSize   = 1024
	MaxScanBatchSize       = 65536
	DefaultMetricsHTTPAddr = "localhost:2112"
)

type Config struct {
	DataDir               string `help:"Directory the local store keeps its data in" type:"path" default:"litho-data"`
	NumShards             int    `help:"Number of shards rows are hashed across" default:"16"`
	ScanBatchSize         int    `help:"Maximum rows per scanned batch" default:"1024"`
	EnableMetrics         bool   `help:"Expose prometheus metrics over HTTP"`
	MetricsHTTPListenAddr string `help:"Listen address for the prometheus metrics endpoint" default:"localhost:2112"`
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.NewInvalidConfigurationError("DataDir must be specified")
	}
	if c.NumShards < 1 {
		return errors.NewInvalidConfigurationError("NumShards must be >= 1")
	}
	if c.ScanBatchSize < 1 || c.ScanBatchSize > MaxScanBatchSize {
		return errors.NewInvalidConfigurationError(fmt.Sprintf("ScanBatchSize must be in the range 1 to %d", MaxScanBatchSize))
	}
	if c.EnableMetrics && c.MetricsHTTPListenAddr == "" {
		return errors.NewInvalidConfigurationError("MetricsHTTPListenAddr must be specified when metrics are enabled")
	}
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		DataDir:               "litho-data",
		NumShards:             DefaultNumShards,
		ScanBatchSize:         DefaultScanBatchSize,
		MetricsHTTPListenAddr: DefaultMetricsHTTPAddr,
	}
}
