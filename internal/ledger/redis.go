package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Keys mirror the original local fallback so an export of either side
// stays interchangeable.
const (
	recordsKey = "local_inventory_records"
	tasksKey   = "local_inventory_tasks"
)

// RedisStore is the local-fallback ledger for shops running without a
// spreadsheet: records as a list of JSON documents, the task queue as a
// single JSON array replaced wholesale.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and verifies the server is reachable before
// handing the store out, so a dead Redis fails at construction instead
// of on the first submission.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) FetchRecords(ctx context.Context) ([]models.PartRecord, error) {
	raw, err := s.client.LRange(ctx, recordsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	records := make([]models.PartRecord, 0, len(raw))
	for _, doc := range raw {
		var r models.PartRecord
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *RedisStore) AppendRecord(ctx context.Context, record models.PartRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, recordsKey, doc).Err(); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

func (s *RedisStore) AppendBatch(ctx context.Context, batch []models.PartRecord) error {
	return appendSequential(ctx, s, batch)
}

func (s *RedisStore) FetchTasks(ctx context.Context) ([]string, error) {
	doc, err := s.client.Get(ctx, tasksKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	var tokens []string
	if err := json.Unmarshal([]byte(doc), &tokens); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tokens, nil
}

func (s *RedisStore) ReplaceTasks(ctx context.Context, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	doc, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, tasksKey, doc, 0).Err(); err != nil {
		return fmt.Errorf("replace tasks: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
