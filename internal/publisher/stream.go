package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"nfl_dashboard/service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// streamAdder is the subset of the redis client the publisher needs
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Snapshot is one normalized week schedule as published to the stream
type Snapshot struct {
	ID          string        `json:"id"`
	Year        int           `json:"year"`
	Week        int           `json:"week"`
	SeasonType  int           `json:"season_type"`
	Games       []models.Game `json:"games"`
	PublishedAt time.Time     `json:"published_at"`
}

// NewSnapshot wraps a schedule for publishing
func NewSnapshot(q models.ScheduleQuery, games []models.Game) *Snapshot {
	if games == nil {
		games = []models.Game{}
	}
	return &Snapshot{
		ID:          uuid.NewString(),
		Year:        q.Year,
		Week:        q.Week,
		SeasonType:  int(q.SeasonType),
		Games:       games,
		PublishedAt: time.Now().UTC(),
	}
}

// StreamPublisher publishes schedule snapshots to a Redis stream
type StreamPublisher struct {
	client streamAdder
	stream string
	maxLen int64
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client streamAdder, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		maxLen: 1000,
	}
}

// PublishSnapshot appends a snapshot to the stream and returns the entry id
func (p *StreamPublisher) PublishSnapshot(ctx context.Context, snap *Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshaling schedule snapshot: %w", err)
	}

	finals := 0
	for _, g := range snap.Games {
		if g.IsFinal() {
			finals++
		}
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":        string(data),
			"snapshot_id": snap.ID,
			"year":        strconv.Itoa(snap.Year),
			"week":        strconv.Itoa(snap.Week),
			"season_type": strconv.Itoa(snap.SeasonType),
			"games":       strconv.Itoa(len(snap.Games)),
			"final":       strconv.Itoa(finals),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("publishing snapshot to %s: %w", p.stream, err)
	}
	return id, nil
}
