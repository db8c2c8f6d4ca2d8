package config

import "errors"

var (
	ErrReadingConfigFile         = errors.New("failed to read config file")
	ErrUnmarshallingConfig       = errors.New("failed to unmarshal config")
	ErrEmptyKafkaBrokers         = errors.New("kafka brokers list cannot be empty")
	ErrEmptyKafkaTopic           = errors.New("kafka topic cannot be empty")
	ErrEmptyKafkaGroupID         = errors.New("kafka groupID cannot be empty")
	ErrInvalidPipelineInterval   = errors.New("pipeline interval must be positive")
	ErrInvalidPipelineBufferSize = errors.New("pipeline bufferSize must be positive")
	ErrNegativeAnalyzerWindow    = errors.New("analyzer window cannot be negative")
	ErrEmptyKeyMetric            = errors.New("operational keyMetric cannot be empty")
	ErrEmptyHTTPAddr             = errors.New("http addr cannot be empty when http is enabled")
	ErrInvalidThreshold          = errors.New("threshold requires analyzer, metric and at least one bound")
	ErrConfigFileMissing         = errors.New("config file not found")
)
