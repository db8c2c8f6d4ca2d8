package pipeline

import "errors"

var (
	ErrInvalidKafkaConfig     = errors.New("invalid Kafka configuration provided")
	ErrKafkaFetchFailed       = errors.New("failed to fetch message from Kafka")
	ErrKafkaCommitFailed      = errors.New("failed to commit Kafka message")
	ErrConsumerCreationFailed = errors.New("failed to create consumer")
	ErrConsumerRunFailed      = errors.New("consumer component failed")
	ErrSchedulerRunFailed     = errors.New("scheduler component failed")
	ErrReporterRunFailed      = errors.New("reporter component failed")
)
