package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sanspareilsmyn/insightlens/internal/config"
)

// fakeReader serves queued messages, then returns fetchErr or blocks until ctx is done.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	fetchErr  error
	committed []kafka.Message
	closed    bool
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{}
	for i, v := range values {
		r.messages = append(r.messages, kafka.Message{Offset: int64(i), Value: []byte(v)})
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		m := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return m, nil
	}
	err := r.fetchErr
	r.mu.Unlock()

	if err != nil {
		return kafka.Message{}, err
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func (r *fakeReader) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{Interval: time.Hour, BufferSize: 10},
		Analyzers: config.AnalyzersConfig{
			Customer:    config.CustomerConfig{Segment: "loyal", WindowDays: 30},
			Market:      config.MarketConfig{Period: "7D", WindowSize: 1},
			Operational: config.OperationalConfig{KeyMetric: "revenue", WindowSize: 2},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }
