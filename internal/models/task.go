package models

import (
	"fmt"
	"strconv"
	"strings"
)

// taskDelimiter separates model name from remaining quantity in the
// persisted token form, e.g. "AS3B*120".
const taskDelimiter = "*"

// Task is one pending production task. Remaining is always positive
// while the task sits in the queue; a task that reaches zero is removed.
type Task struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// Token renders the wire form stored in the task sheet.
func (t Task) Token() string {
	return t.Name + taskDelimiter + strconv.Itoa(t.Remaining)
}

// ParseTask decodes a persisted task token. Malformed tokens (missing
// delimiter, non-numeric or non-positive quantity) are rejected so they
// surface as validation errors instead of corrupting the queue.
func ParseTask(token string) (Task, error) {
	name, qty, ok := strings.Cut(token, taskDelimiter)
	if !ok || name == "" {
		return Task{}, fmt.Errorf("malformed task token %q", token)
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return Task{}, fmt.Errorf("malformed task token %q: quantity not numeric", token)
	}
	if n <= 0 {
		return Task{}, fmt.Errorf("malformed task token %q: quantity must be positive", token)
	}
	return Task{Name: name, Remaining: n}, nil
}

// EncodeTasks converts a queue to its persisted token list, preserving order.
func EncodeTasks(tasks []Task) []string {
	tokens := make([]string, len(tasks))
	for i, t := range tasks {
		tokens[i] = t.Token()
	}
	return tokens
}

// AddTaskRequest creates a mirrored L/R pair of tasks for a base model.
type AddTaskRequest struct {
	BaseModel string `json:"base_model" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CompleteTaskRequest reports (possibly partial) completion of a queued task.
// Specification is the stage the operator's form is currently on; when the
// completion-stage gate policy is enabled it must be the finished stage.
type CompleteTaskRequest struct {
	DoneQuantity  int    `json:"done_quantity" validate:"required,gt=0"`
	Specification string `json:"specification"`
}

// CompleteTaskResult reports the outcome of a completion, including how
// far past the planned quantity the operator went (0 when not over).
type CompleteTaskResult struct {
	Submit       SubmitResult `json:"submit"`
	Removed      bool         `json:"removed"`
	Remaining    int          `json:"remaining"`
	Overproduced int          `json:"overproduced"`
}
