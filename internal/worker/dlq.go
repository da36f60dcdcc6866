package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Failed jobs are parked on a per-queue dead letter list ("dlq:" + queue)
// so an operator can inspect and replay them with redis-cli.
const dlqPrefix = "dlq:"

// deadLetter records why a job was parked alongside its original payload.
type deadLetter struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}

// parkJob moves a failed job onto the queue's dead letter list. Parking is
// best-effort: errors are logged and swallowed, never taking the worker down.
func parkJob(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string) {
	entry := deadLetter{
		Queue:    queue,
		JobType:  jobType,
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Msg("dlq: job parked")
}
