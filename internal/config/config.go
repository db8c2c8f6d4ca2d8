package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultKafkaEnabled         = false
	defaultKafkaGroupID         = "insightlens-default-group"
	defaultPipelineInterval     = 1 * time.Minute
	defaultPipelineBufferSize   = 100
	defaultCustomerSegment      = "loyal"
	defaultCustomerWindowDays   = 30
	defaultMarketPeriod         = "7D"
	defaultMarketWindowSize     = 30
	defaultOperationalKeyMetric = "revenue"
	defaultOperationalWindow    = 30
	defaultHTTPEnabled          = true
	defaultHTTPAddr             = ":8080"
	defaultHTTPMode             = "release"
	defaultLogLevel             = "info"
	defaultLogFormat            = "console"
	defaultLogFileEnabled       = false
	defaultLogDirectory         = "log"
	defaultLogFilename          = "app.log"
	defaultLogMaxSizeMB         = 100
	defaultLogMaxBackups        = 3
	defaultLogMaxAgeDays        = 7
	defaultLogCompress          = false

	// Environment variable prefix
	envPrefix = "INSIGHTLENS"
)

type Config struct {
	Kafka      KafkaConfig       `mapstructure:"kafka"`
	Pipeline   PipelineConfig    `mapstructure:"pipeline"`
	Analyzers  AnalyzersConfig   `mapstructure:"analyzers"`
	Thresholds []ThresholdConfig `mapstructure:"thresholds"`
	HTTP       HTTPConfig        `mapstructure:"http"`
	Log        LogConfig         `mapstructure:"log"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

type PipelineConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	BufferSize int           `mapstructure:"bufferSize"`
}

// AnalyzersConfig holds the parameters the scheduler and HTTP API use when a caller supplies none.
type AnalyzersConfig struct {
	Customer    CustomerConfig    `mapstructure:"customer"`
	Market      MarketConfig      `mapstructure:"market"`
	Operational OperationalConfig `mapstructure:"operational"`
}

type CustomerConfig struct {
	Segment    string `mapstructure:"segment"`
	WindowDays int    `mapstructure:"windowDays"`
}

type MarketConfig struct {
	Period     string `mapstructure:"period"` // e.g., "7D", "30D", "12h"
	WindowSize int    `mapstructure:"windowSize"`
}

type OperationalConfig struct {
	KeyMetric  string `mapstructure:"keyMetric"`
	WindowSize int    `mapstructure:"windowSize"`
}

// ThresholdConfig bounds one metric of one analyzer. Either bound may be omitted.
type ThresholdConfig struct {
	Analyzer string   `mapstructure:"analyzer"` // customer, market or operational
	Metric   string   `mapstructure:"metric"`
	Min      *float64 `mapstructure:"min"`
	Max      *float64 `mapstructure:"max"`
}

type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Mode    string `mapstructure:"mode"` // "debug" or "release"
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`    // Max size in MB
	MaxBackups         int    `mapstructure:"maxBackups"` // Max backup files
	MaxAge             int    `mapstructure:"maxAge"`     // Max days to retain
	Compress           bool   `mapstructure:"compress"`   // Compress rotated files?
}

// Load initializes viper, reads config, applies defaults, unmarshals, and validates.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)

	// Set default values before reading config source .yaml
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configureViper sets up viper instance for file and environment variables.
func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults applies default configuration values using Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("kafka.enabled", defaultKafkaEnabled)
	v.SetDefault("kafka.groupID", defaultKafkaGroupID)
	v.SetDefault("pipeline.interval", defaultPipelineInterval)
	v.SetDefault("pipeline.bufferSize", defaultPipelineBufferSize)
	v.SetDefault("analyzers.customer.segment", defaultCustomerSegment)
	v.SetDefault("analyzers.customer.windowDays", defaultCustomerWindowDays)
	v.SetDefault("analyzers.market.period", defaultMarketPeriod)
	v.SetDefault("analyzers.market.windowSize", defaultMarketWindowSize)
	v.SetDefault("analyzers.operational.keyMetric", defaultOperationalKeyMetric)
	v.SetDefault("analyzers.operational.windowSize", defaultOperationalWindow)
	v.SetDefault("http.enabled", defaultHTTPEnabled)
	v.SetDefault("http.addr", defaultHTTPAddr)
	v.SetDefault("http.mode", defaultHTTPMode)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", defaultLogFileEnabled)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
	v.SetDefault("log.compress", defaultLogCompress)
}

// readConfigFile attempts to read the configuration file specified in viper.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) || errors.Is(err, os.ErrNotExist) {
			return ErrConfigFileMissing
		}
		return fmt.Errorf("%w: %w", ErrReadingConfigFile, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			return ErrEmptyKafkaBrokers
		}
		if cfg.Kafka.Topic == "" {
			return ErrEmptyKafkaTopic
		}
		if cfg.Kafka.GroupID == "" {
			return ErrEmptyKafkaGroupID
		}
	}
	if cfg.Pipeline.Interval <= 0 {
		return ErrInvalidPipelineInterval
	}
	if cfg.Pipeline.BufferSize <= 0 {
		return ErrInvalidPipelineBufferSize
	}
	if cfg.Analyzers.Customer.WindowDays < 0 ||
		cfg.Analyzers.Market.WindowSize < 0 ||
		cfg.Analyzers.Operational.WindowSize < 0 {
		return ErrNegativeAnalyzerWindow
	}
	if cfg.Analyzers.Operational.KeyMetric == "" {
		return ErrEmptyKeyMetric
	}
	if cfg.HTTP.Enabled && cfg.HTTP.Addr == "" {
		return ErrEmptyHTTPAddr
	}
	for i, th := range cfg.Thresholds {
		if th.Analyzer == "" || th.Metric == "" || (th.Min == nil && th.Max == nil) {
			return fmt.Errorf("%w: thresholds[%d]", ErrInvalidThreshold, i)
		}
	}
	return nil
}
