package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wellen-backend/internal/config"
	"wellen-backend/internal/models"
)

// Hot-read cache keys
const (
	waveListKey   = "waves:list"
	waveDetailFmt = "waves:detail:%d"

	waveTTL = 5 * time.Minute
)

var client *redis.Client

// Client exposes the underlying connection for health checks; nil when the
// cache is disabled.
func Client() *redis.Client {
	return client
}

// Init initializes the Redis connection. The cache degrades gracefully: a
// nil client turns every operation into a no-op.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetWaveList returns the cached wave list if available.
func GetWaveList(ctx context.Context) ([]models.WaveListItem, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, waveListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var waves []models.WaveListItem
	if err := json.Unmarshal(data, &waves); err != nil {
		return nil, false
	}
	return waves, true
}

// SetWaveList caches the wave list for 5 minutes.
func SetWaveList(ctx context.Context, waves []models.WaveListItem) {
	if client == nil {
		return
	}
	data, err := json.Marshal(waves)
	if err != nil {
		return
	}
	client.Set(ctx, waveListKey, data, waveTTL)
}

// GetWave returns a cached full wave if available.
func GetWave(ctx context.Context, id int) (*models.Wave, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(waveDetailFmt, id)).Bytes()
	if err != nil {
		return nil, false
	}
	var w models.Wave
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, false
	}
	return &w, true
}

// SetWave caches a full wave for 5 minutes.
func SetWave(ctx context.Context, w *models.Wave) {
	if client == nil || w == nil {
		return
	}
	data, err := json.Marshal(w)
	if err != nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(waveDetailFmt, w.ID), data, waveTTL)
}

// InvalidateWaves drops all wave caches; called on every wave or submission
// mutation.
func InvalidateWaves(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, waveListKey)
	iter := client.Scan(ctx, 0, "waves:detail:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
