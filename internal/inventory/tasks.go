package inventory

import (
	"fmt"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// Queue operations are pure: each returns a fresh slice so the caller
// can persist and swap the whole queue atomically.

// AddPair appends a mirrored L/R pair of tasks for a base model. Doors
// are manufactured in mirrored pairs, so dispatch always orders both.
func AddPair(queue []models.Task, baseModel string, qty int) ([]models.Task, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("task quantity must be positive, got %d", qty)
	}
	out := make([]models.Task, 0, len(queue)+2)
	out = append(out, queue...)
	out = append(out,
		models.Task{Name: baseModel + "-L", Remaining: qty},
		models.Task{Name: baseModel + "-R", Remaining: qty},
	)
	return out, nil
}

// Complete applies a done quantity to the task at index. A task with
// remaining work stays queued in place with its count rewritten; a task
// completed in full (or beyond) is removed. Overshoot reports how far
// past the plan the operator went; it is accepted, not capped, because
// the ledger must record actual production.
func Complete(queue []models.Task, index, done int) (updated []models.Task, removed bool, remaining, overshoot int, err error) {
	if index < 0 || index >= len(queue) {
		return nil, false, 0, 0, fmt.Errorf("task index %d out of range", index)
	}
	if done <= 0 {
		return nil, false, 0, 0, fmt.Errorf("done quantity must be positive, got %d", done)
	}

	task := queue[index]
	newRemaining := task.Remaining - done

	if newRemaining > 0 {
		updated = make([]models.Task, len(queue))
		copy(updated, queue)
		updated[index] = models.Task{Name: task.Name, Remaining: newRemaining}
		return updated, false, newRemaining, 0, nil
	}

	updated = make([]models.Task, 0, len(queue)-1)
	updated = append(updated, queue[:index]...)
	updated = append(updated, queue[index+1:]...)
	return updated, true, 0, -newRemaining, nil
}

// Delete removes the task at index.
func Delete(queue []models.Task, index int) ([]models.Task, error) {
	if index < 0 || index >= len(queue) {
		return nil, fmt.Errorf("task index %d out of range", index)
	}
	out := make([]models.Task, 0, len(queue)-1)
	out = append(out, queue[:index]...)
	out = append(out, queue[index+1:]...)
	return out, nil
}

// MoveToFront bumps the task at index to the head of the queue,
// preserving the relative order of the rest. Moving the head is a no-op.
func MoveToFront(queue []models.Task, index int) ([]models.Task, error) {
	if index < 0 || index >= len(queue) {
		return nil, fmt.Errorf("task index %d out of range", index)
	}
	if index == 0 {
		out := make([]models.Task, len(queue))
		copy(out, queue)
		return out, nil
	}
	out := make([]models.Task, 0, len(queue))
	out = append(out, queue[index])
	out = append(out, queue[:index]...)
	out = append(out, queue[index+1:]...)
	return out, nil
}
