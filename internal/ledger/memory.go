package ledger

import (
	"context"
	"sync"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// MemoryStore keeps the ledger in process memory. It backs zero-config
// startups and the test suite; contents are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.PartRecord
	tokens  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) FetchRecords(ctx context.Context) ([]models.PartRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PartRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) AppendRecord(ctx context.Context, record models.PartRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore) AppendBatch(ctx context.Context, batch []models.PartRecord) error {
	return appendSequential(ctx, s, batch)
}

func (s *MemoryStore) FetchTasks(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out, nil
}

func (s *MemoryStore) ReplaceTasks(ctx context.Context, tokens []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make([]string, len(tokens))
	copy(s.tokens, tokens)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
