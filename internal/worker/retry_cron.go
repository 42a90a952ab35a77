package worker

// retry_cron.go
// Background goroutine that periodically drains the dead letter queues back
// onto their source queues so transient outages (SMTP down, disk full) heal
// without manual intervention. Entries that keep failing are parked for
// inspection instead of cycling forever.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 5 * time.Minute
	retryBatchSize    = 10

	// An entry re-enters its queue until total attempts reach this cap,
	// then it moves to dlq:parked:{queue} and stays there.
	maxTotalAttempts = 9

	parkedPrefix = "dlq:parked:"
)

// StartRetryCron launches a goroutine that ticks every 5 minutes and
// requeues DLQ entries. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				for _, queue := range []string{QueueReportes, QueueEmail} {
					requeueDLQ(ctx, rdb, queue)
				}
			}
		}
	}()
}

func requeueDLQ(ctx context.Context, rdb *redis.Client, queue string) {
	dlqKey := DLQPrefix + queue
	for i := 0; i < retryBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // empty or redis down; next tick retries
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: corrupt DLQ entry dropped")
			continue
		}

		if entry.Attempts >= maxTotalAttempts {
			_ = rdb.LPush(ctx, parkedPrefix+queue, raw).Err()
			log.Warn().Str("queue", queue).Str("type", entry.JobType).
				Int("attempts", entry.Attempts).Msg("retry_cron: entry parked for manual inspection")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		encoded, err := json.Marshal(job)
		if err != nil {
			continue
		}
		if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: requeue failed")
			return
		}
		log.Info().Str("queue", queue).Str("type", entry.JobType).
			Int("attempts", entry.Attempts).Msg("retry_cron: DLQ entry requeued")
	}
}
