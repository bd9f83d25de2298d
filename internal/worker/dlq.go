package worker

// Jobs that keep failing are parked in dlq:<cola> so an operator
// can see which balance emails never went out.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const prefijoDLQ = "dlq:"

// ClaveDLQ is the Redis list holding the failures of cola.
func ClaveDLQ(cola string) string { return prefijoDLQ + cola }

// FalloJob is one parked job.
type FalloJob struct {
	Cola      string          `json:"cola"`
	Tipo      string          `json:"tipo"`
	Payload   json.RawMessage `json:"payload"`
	Motivo    string          `json:"motivo"`
	Intentos  int             `json:"intentos"`
	FallidoEn time.Time       `json:"fallido_en"`
}

// aparcar pushes a failed job to its dead-letter list. Errors are only
// logged: the job is already lost for the pool either way.
func aparcar(ctx context.Context, rdb *redis.Client, f FalloJob) {
	if f.FallidoEn.IsZero() {
		f.FallidoEn = time.Now().UTC()
	}
	data, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Str("cola", f.Cola).Msg("dlq: marshal")
		return
	}
	if err := rdb.LPush(ctx, ClaveDLQ(f.Cola), data).Err(); err != nil {
		log.Error().Err(err).Str("cola", f.Cola).Msg("dlq: push")
		return
	}
	log.Warn().
		Str("cola", f.Cola).
		Str("tipo", f.Tipo).
		Str("motivo", f.Motivo).
		Int("intentos", f.Intentos).
		Msg("dlq: job aparcado")
}

// PendientesDLQ counts the parked jobs of cola.
func PendientesDLQ(ctx context.Context, rdb *redis.Client, cola string) (int64, error) {
	return rdb.LLen(ctx, ClaveDLQ(cola)).Result()
}

// UltimosFallos returns up to n parked jobs, newest first.
func UltimosFallos(ctx context.Context, rdb *redis.Client, cola string, n int64) ([]FalloJob, error) {
	raws, err := rdb.LRange(ctx, ClaveDLQ(cola), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]FalloJob, 0, len(raws))
	for _, raw := range raws {
		var f FalloJob
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("dlq: entrada ilegible: %w", err)
		}
		out = append(out, f)
	}
	return out, nil
}
