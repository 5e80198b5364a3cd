package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/numjklpp1/parts-management-pro/internal/inventory"
	"github.com/numjklpp1/parts-management-pro/internal/ledger"
	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// TaskService owns the dispatch task queue. Every mutation builds the
// new queue as a fresh slice, persists it wholesale through the store,
// and only then swaps the in-memory copy, so a failed persist leaves
// local state untouched.
type TaskService struct {
	store     ledger.Store
	inv       *InventoryService
	stageGate bool

	mu    sync.Mutex
	queue []models.Task
}

// NewTaskService wires the queue to its store and the submission
// pipeline. stageGate enables the completion-stage policy: completion
// requests must declare the finished stage or are rejected.
func NewTaskService(store ledger.Store, inv *InventoryService, stageGate bool) *TaskService {
	return &TaskService{store: store, inv: inv, stageGate: stageGate}
}

// Load replaces the in-memory queue from the store. Malformed tokens
// are skipped with a log line rather than bricking startup; they stay
// untouched in the store until someone fixes the sheet.
func (s *TaskService) Load(ctx context.Context) error {
	tokens, err := s.store.FetchTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	queue := make([]models.Task, 0, len(tokens))
	for _, tok := range tokens {
		t, err := models.ParseTask(tok)
		if err != nil {
			log.Printf("[Tasks] skipping %v", err)
			continue
		}
		queue = append(queue, t)
	}
	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()
	return nil
}

// Tasks returns a copy of the queue in dispatch order.
func (s *TaskService) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.queue))
	copy(out, s.queue)
	return out
}

// AddPair queues an L/R pair for a base model.
func (s *TaskService) AddPair(ctx context.Context, req models.AddTaskRequest) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := inventory.AddPair(s.queue, req.BaseModel, req.Quantity)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	return s.replaceLocked(ctx, updated)
}

// Delete removes the task at index.
func (s *TaskService) Delete(ctx context.Context, index int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := inventory.Delete(s.queue, index)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	return s.replaceLocked(ctx, updated)
}

// MoveToFront reprioritizes the task at index to the head of the queue.
func (s *TaskService) MoveToFront(ctx context.Context, index int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := inventory.MoveToFront(s.queue, index)
	if err != nil {
		return nil, validationErrorf("%v", err)
	}
	return s.replaceLocked(ctx, updated)
}

// Complete reports doneQuantity finished units against the task at
// index: it submits a finished-stage record expanded through the
// deduction engine, then rewrites or removes the task. The ledger
// submission happens first; if persisting the queue afterwards fails,
// the produced records stand and the error reports the queue only.
func (s *TaskService) Complete(ctx context.Context, index int, req models.CompleteTaskRequest) (models.CompleteTaskResult, error) {
	if s.stageGate && inventory.Stage(req.Specification) != inventory.StageFinished {
		return models.CompleteTaskResult{}, validationErrorf(
			"completion requires the %s stage, form is on %q", inventory.StageFinished, req.Specification)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, removed, remaining, overshoot, err := inventory.Complete(s.queue, index, req.DoneQuantity)
	if err != nil {
		return models.CompleteTaskResult{}, validationErrorf("%v", err)
	}
	task := s.queue[index]

	primary := models.PartRecord{
		ID:            inventory.NewRecordID(models.CategoryGlassSlidingDoor),
		Timestamp:     inventory.Timestamp(),
		Category:      models.CategoryGlassSlidingDoor,
		Name:          task.Name,
		Specification: string(inventory.StageFinished),
		Quantity:      req.DoneQuantity,
		Note:          "[調度看板完工]",
	}
	submit, err := s.inv.SubmitExpanded(ctx, primary)
	if err != nil {
		return models.CompleteTaskResult{}, err
	}

	if _, err := s.replaceLocked(ctx, updated); err != nil {
		return models.CompleteTaskResult{}, err
	}
	if overshoot > 0 {
		log.Printf("[Tasks] %s overproduced by %d (planned %d, reported %d)",
			task.Name, overshoot, task.Remaining, req.DoneQuantity)
	}
	return models.CompleteTaskResult{
		Submit:       submit,
		Removed:      removed,
		Remaining:    remaining,
		Overproduced: overshoot,
	}, nil
}

// replaceLocked persists the new queue and swaps it in on success.
// Caller must hold s.mu.
func (s *TaskService) replaceLocked(ctx context.Context, updated []models.Task) ([]models.Task, error) {
	if err := s.store.ReplaceTasks(ctx, models.EncodeTasks(updated)); err != nil {
		return nil, &PersistenceError{Err: fmt.Errorf("persist task queue: %w", err)}
	}
	s.queue = updated
	out := make([]models.Task, len(updated))
	copy(out, updated)
	return out, nil
}
