package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const QueueStockAlerts = "jobs:stock_alerts"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StockAlertPayload is the job envelope sent to QueueStockAlerts when a
// movement leaves an ingredient at or below its minimum. All fields are
// strings so the wire format stays stable across decimal precision changes.
type StockAlertPayload struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	Unit           string `json:"unit"`
	Stock          string `json:"stock"`
	MinStock       string `json:"min_stock"`
	BusinessID     string `json:"business_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueStockAlert pushes a low-stock notification job to Redis.
func (d *Dispatcher) EnqueueStockAlert(ctx context.Context, payload StockAlertPayload) error {
	return d.enqueue(ctx, QueueStockAlerts, "stock_alert", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
