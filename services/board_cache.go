package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booksmart/model"

	"github.com/redis/go-redis/v9"
)

// BoardCache is a board-scoped read cache for the assembled board view.
// Every entry carries the generation current at the time the fill started;
// Invalidate bumps the generation, so a slow fill for a board the user has
// since mutated or navigated away from can never overwrite fresher data.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type BoardViewEntry struct {
	Board      *model.Board      `json:"board"`
	Folders    []*model.Folder   `json:"folders"`
	Bookmarks  []*model.Bookmark `json:"bookmarks"`
	Generation int64             `json:"generation"`
	CachedAt   time.Time         `json:"cached_at"`
}

var GlobalBoardCache *BoardCache

func NewBoardCache(redisURL string, ttl time.Duration) (*BoardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &BoardCache{client: client, ttl: ttl}, nil
}

// Generation returns the current generation for a board.
func (bc *BoardCache) Generation(ctx context.Context, boardID string) (int64, error) {
	gen, err := bc.client.Get(ctx, fmt.Sprintf("board_gen:%s", boardID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read board generation: %v", err)
	}
	return gen, nil
}

// Set stores an assembled board view. The entry is dropped when its
// generation no longer matches the board's current generation, which means
// a mutation happened while the fill was in flight.
func (bc *BoardCache) Set(ctx context.Context, boardID string, entry *BoardViewEntry) error {
	if entry == nil {
		return fmt.Errorf("cannot cache nil board view")
	}

	current, err := bc.Generation(ctx, boardID)
	if err != nil {
		return err
	}
	if entry.Generation != current {
		return nil // stale fill, discard
	}

	entry.CachedAt = time.Now()
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal board view: %v", err)
	}

	key := fmt.Sprintf("board:%s", boardID)
	if err := bc.client.Set(ctx, key, data, bc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache board view: %v", err)
	}
	return nil
}

// Get retrieves a cached board view; nil means a cache miss. Entries whose
// generation is behind the board's current generation count as misses.
func (bc *BoardCache) Get(ctx context.Context, boardID string) (*BoardViewEntry, error) {
	key := fmt.Sprintf("board:%s", boardID)

	data, err := bc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board view from cache: %v", err)
	}

	var entry BoardViewEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board view: %v", err)
	}

	current, err := bc.Generation(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if entry.Generation != current {
		bc.client.Del(ctx, key)
		return nil, nil
	}

	return &entry, nil
}

// Invalidate bumps the board's generation and drops the cached view.
// Called after every mutating operation on the board's contents.
func (bc *BoardCache) Invalidate(ctx context.Context, boardID string) error {
	if err := bc.client.Incr(ctx, fmt.Sprintf("board_gen:%s", boardID)).Err(); err != nil {
		return fmt.Errorf("failed to bump board generation: %v", err)
	}
	return bc.client.Del(ctx, fmt.Sprintf("board:%s", boardID)).Err()
}

// Close closes the Redis connection
func (bc *BoardCache) Close() error {
	return bc.client.Close()
}
