package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

var (
	broker   = flag.String("broker", "localhost:9092", "Kafka broker address")
	topic    = flag.String("topic", "insight-datasets", "Topic carrying dataset snapshots")
	interval = flag.Duration("interval", 10*time.Second, "Time between snapshot rounds")
	rowCount = flag.Int("rows", 90, "Rows per generated dataset")
)

var segments = []string{"loyal", "new", "at_risk"}

func main() {
	flag.Parse()

	writer := &kafka.Writer{
		Addr:     kafka.TCP(*broker),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.Fatalf("Error closing kafka writer: %v", err)
		}
	}()
	log.Printf("Starting sample producer for topic: %s on broker: %s", *topic, *broker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		now := time.Now()
		snapshots := []table.Snapshot{
			{Dataset: "customer", Rows: customerRows(rng, now, *rowCount)},
			{Dataset: "market", Rows: marketRows(rng, now, *rowCount)},
			{Dataset: "operational", Rows: operationalRows(rng, *rowCount)},
		}

		for _, snap := range snapshots {
			value, err := json.Marshal(snap)
			if err != nil {
				log.Printf("Error marshalling %s snapshot: %v", snap.Dataset, err)
				continue
			}
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(snap.Dataset), Value: value}); err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting producer loop.")
					return
				}
				log.Printf("Error writing %s snapshot: %v", snap.Dataset, err)
				continue
			}
			log.Printf("Produced %s snapshot with %d rows", snap.Dataset, len(snap.Rows))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Println("Producer loop stopped.")
			return
		}
	}
}

// customerRows spreads purchases over the last n days; about 5% of values are null.
func customerRows(rng *rand.Rand, now time.Time, n int) table.Table {
	rows := make(table.Table, 0, n)
	for i := range n {
		row := table.Row{
			"customer_id": fmt.Sprintf("cust_%d", rng.Intn(10000)),
			"segment":     segments[rng.Intn(len(segments))],
			"timestamp":   now.Add(-time.Duration(i) * 24 * time.Hour).Format(time.RFC3339),
		}
		if rng.Float64() > 0.05 {
			row["purchase_count"] = 1 + rng.Intn(12)
		} else {
			row["purchase_count"] = nil
		}
		row["revenue_per_purchase"] = 20.0 + rng.NormFloat64()*5.0
		rows = append(rows, row)
	}
	return rows
}

// marketRows produces one revenue figure per day, drifting upward with occasional spikes.
func marketRows(rng *rand.Rand, now time.Time, n int) table.Table {
	rows := make(table.Table, 0, n)
	revenue := 1000.0
	for i := n - 1; i >= 0; i-- {
		revenue += rng.NormFloat64() * 25.0
		value := revenue
		if rng.Float64() < 0.02 {
			value += rng.Float64() * 500.0
		}
		rows = append(rows, table.Row{
			"date":    now.Add(-time.Duration(i) * 24 * time.Hour).Format(time.DateOnly),
			"revenue": value,
		})
	}
	return rows
}

func operationalRows(rng *rand.Rand, n int) table.Table {
	rows := make(table.Table, 0, n)
	for range n {
		rows = append(rows, table.Row{
			"revenue":    500.0 + rng.Float64()*100.0,
			"margin":     0.2 + rng.NormFloat64()*0.03,
			"latency_ms": 10 + rng.Intn(40),
		})
	}
	return rows
}
