// Package ledger provides the persistence boundary for the append-only
// part-record log and the dispatch task list. The core never talks to a
// concrete backend; it sees only Store, chosen once at construction.
package ledger

import (
	"context"
	"fmt"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Store is the ledger persistence contract. Records are append-only;
// the task list is replaced wholesale, matching the sheet-side contract.
type Store interface {
	FetchRecords(ctx context.Context) ([]models.PartRecord, error)

	AppendRecord(ctx context.Context, record models.PartRecord) error

	// AppendBatch persists a batch preserving order. Implementations
	// without transactional semantics append sequentially, so a failure
	// partway can leave a persisted prefix behind.
	AppendBatch(ctx context.Context, batch []models.PartRecord) error

	FetchTasks(ctx context.Context) ([]string, error)

	ReplaceTasks(ctx context.Context, tokens []string) error

	Ping(ctx context.Context) error
}

// appendSequential is the shared non-transactional AppendBatch policy:
// one append per record, in order, stopping at the first failure.
func appendSequential(ctx context.Context, s Store, batch []models.PartRecord) error {
	for i, record := range batch {
		if err := s.AppendRecord(ctx, record); err != nil {
			return fmt.Errorf("append record %d/%d (%s): %w", i+1, len(batch), record.ID, err)
		}
	}
	return nil
}
