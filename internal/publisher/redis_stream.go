package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/hardwood/internal/pipeline"
	"github.com/fortuna/hardwood/internal/store"
)

// progressStream is the Redis stream scrape-progress events land on.
// Downstream consumers (dashboards, alerting) read it with XREAD.
const progressStream = "hardwood.scrape.progress"

// maxStreamLen caps the stream so an unattended long run cannot grow it
// without bound.
const maxStreamLen = 10000

// StreamPublisher mirrors pipeline progress onto a Redis stream. It satisfies
// pipeline.Reporter, so it plugs in next to the console and websocket
// reporters.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher connects to Redis and verifies the connection.
func NewStreamPublisher(redisURL string) (*StreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &StreamPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (p *StreamPublisher) Close() error {
	return p.client.Close()
}

func (p *StreamPublisher) publish(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Publishing is best effort; a full or unreachable Redis must never
	// stall the scrape itself.
	p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: progressStream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"event":     event,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	})
}

func (p *StreamPublisher) OnRunStart(total int) {
	p.publish("run_start", map[string]int{"total": total})
}

func (p *StreamPublisher) OnGameProcessed(game store.Game, playerRows, totalsRows int) {
	p.publish("game_processed", map[string]interface{}{
		"game_id":     game.ID,
		"date":        game.Date.Format("2006-01-02"),
		"player_rows": playerRows,
		"totals_rows": totalsRows,
	})
}

func (p *StreamPublisher) OnGameSkipped(game store.Game, reason error) {
	p.publish("game_skipped", map[string]interface{}{
		"game_id": game.ID,
		"reason":  reason.Error(),
	})
}

func (p *StreamPublisher) OnGameFailed(game store.Game, err error) {
	p.publish("game_failed", map[string]interface{}{
		"game_id": game.ID,
		"reason":  err.Error(),
	})
}

func (p *StreamPublisher) OnRunComplete(summary pipeline.Summary) {
	p.publish("run_complete", summary)
}
