package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/numjklpp1/parts-management-pro/internal/inventory"
	"github.com/numjklpp1/parts-management-pro/internal/ledger"
	"github.com/numjklpp1/parts-management-pro/internal/metrics"
	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Submission pipeline states.
const (
	StateCommitted  = "committed"
	StateRolledBack = "rolled_back"
)

// InventoryService owns the in-memory record list and runs the
// submission pipeline: validate, expand into a batch, apply
// optimistically, persist sequentially, roll back fully on failure.
//
// The record list is the single authoritative in-memory copy of the
// ledger; it is replaced wholesale under the mutex, never patched in
// place. The mutex is held across the persist call on purpose: batches
// reference "current stock" of earlier batches, so submissions must be
// serialized, matching the single-actor model this pipeline assumes.
type InventoryService struct {
	store ledger.Store

	mu      sync.Mutex
	records []models.PartRecord
}

func NewInventoryService(store ledger.Store) *InventoryService {
	return &InventoryService{store: store}
}

// Load replaces in-memory state with the full ledger from the store.
func (s *InventoryService) Load(ctx context.Context) error {
	records, err := s.store.FetchRecords(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the in-memory ledger.
func (s *InventoryService) Records() []models.PartRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PartRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Project returns current stock for one glass-door (stage, model) cell.
func (s *InventoryService) Project(stage inventory.Stage, model string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Project(s.records, stage, model)
}

// Summary projects the full glass-door stock snapshot.
func (s *InventoryService) Summary() inventory.StockSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Summary(s.records)
}

// Submit validates a manual submission, expands it through the
// deduction engine and runs the pipeline.
func (s *InventoryService) Submit(ctx context.Context, req models.SubmitRecordRequest) (models.SubmitResult, error) {
	if err := validateSubmission(req); err != nil {
		return models.SubmitResult{}, err
	}

	note := req.Note
	if req.Adjustment {
		note = "[手動] " + note
	}
	primary := models.PartRecord{
		ID:            inventory.NewRecordID(req.Category),
		Timestamp:     inventory.Timestamp(),
		Category:      req.Category,
		Name:          req.Name,
		Specification: req.Specification,
		Quantity:      req.Quantity,
		Note:          note,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := inventory.Expand(primary, s.records, req.Adjustment)
	return s.commitLocked(ctx, batch)
}

// SubmitExpanded runs a pre-built primary record (task completions)
// through deduction expansion and the pipeline.
func (s *InventoryService) SubmitExpanded(ctx context.Context, primary models.PartRecord) (models.SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := inventory.Expand(primary, s.records, false)
	return s.commitLocked(ctx, batch)
}

// Adjust diffs an edited snapshot against the current projection and
// persists one delta record per changed cell. Adjustment records bypass
// the deduction engine entirely.
func (s *InventoryService) Adjust(ctx context.Context, req models.AdjustStockRequest) (models.SubmitResult, error) {
	for stage, cells := range req.Edited {
		if !inventory.ValidStage(inventory.Stage(stage)) {
			return models.SubmitResult{}, validationErrorf("unknown stage %q", stage)
		}
		for model := range cells {
			if !inventory.ValidModel(inventory.Stage(stage), model) {
				return models.SubmitResult{}, validationErrorf("unknown model %q for stage %q", model, stage)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := inventory.Reconcile(req.Edited, inventory.Summary(s.records))
	if len(batch) == 0 {
		return models.SubmitResult{State: StateCommitted, Records: []models.PartRecord{}}, nil
	}
	return s.commitLocked(ctx, batch)
}

// commitLocked applies the batch optimistically, persists it, and rolls
// the whole batch back if any record fails to persist. The remote store
// may retain a prefix of a failed batch; nothing here reconciles that
// divergence, the next Load simply adopts whatever the store holds.
// Caller must hold s.mu.
func (s *InventoryService) commitLocked(ctx context.Context, batch []models.PartRecord) (models.SubmitResult, error) {
	oldState := s.records
	next := make([]models.PartRecord, 0, len(oldState)+len(batch))
	next = append(next, oldState...)
	next = append(next, batch...)
	s.records = next

	if err := s.store.AppendBatch(ctx, batch); err != nil {
		s.records = oldState
		metrics.SubmissionsTotal.WithLabelValues(StateRolledBack).Inc()
		return models.SubmitResult{State: StateRolledBack}, &PersistenceError{Err: err}
	}

	metrics.SubmissionsTotal.WithLabelValues(StateCommitted).Inc()
	metrics.RecordsPersisted.Add(float64(len(batch)))
	return models.SubmitResult{State: StateCommitted, Records: batch}, nil
}

// Dashboard aggregates the numbers the dashboard view shows.
func (s *InventoryService) Dashboard() models.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.DashboardStats{
		TotalItems:     len(s.records),
		RecentActivity: []models.PartRecord{},
	}
	byCategory := make(map[models.PartCategory]int, len(models.Categories))
	for _, r := range s.records {
		stats.TotalQuantity += r.Quantity
		byCategory[r.Category] += r.Quantity
	}
	for _, c := range models.Categories {
		stats.CategoryDistribution = append(stats.CategoryDistribution, models.CategoryQuantity{
			Name:  c,
			Value: byCategory[c],
		})
	}
	for i := len(s.records) - 1; i >= 0 && len(stats.RecentActivity) < 5; i-- {
		stats.RecentActivity = append(stats.RecentActivity, s.records[i])
	}
	return stats
}

func validateSubmission(req models.SubmitRecordRequest) error {
	if req.Quantity == 0 {
		return validationErrorf("quantity must not be zero")
	}
	if !req.Category.Valid() {
		return validationErrorf("unknown category %q", req.Category)
	}
	if req.Category == models.CategoryGlassSlidingDoor {
		stage := inventory.Stage(req.Specification)
		if !inventory.ValidStage(stage) {
			return validationErrorf("unknown stage %q", req.Specification)
		}
		if !inventory.ValidModel(stage, req.Name) {
			return validationErrorf("unknown model %q for stage %q", req.Name, req.Specification)
		}
		return nil
	}
	if req.Name == "" {
		return validationErrorf("name is required")
	}
	return nil
}
