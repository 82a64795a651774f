/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusReady     TaskStatus = "ready"
	StatusRunning   TaskStatus = "running"
	StatusSucceeded TaskStatus = "succeeded"
	StatusFailed    TaskStatus = "failed"
	StatusSkipped   TaskStatus = "skipped"
)

// IsTerminal reports whether a task in this status is finished.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// Task represents a unit of work produced by the planner: one tool
// invocation plus the ids of the tasks whose outputs it needs first.
type Task struct {
	ID           string         `json:"id" yaml:"id" toml:"id" validate:"required,min=1"`
	Tool         string         `json:"tool" yaml:"tool" toml:"tool" validate:"required,min=1"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Input        map[string]any `json:"input,omitempty" yaml:"input,omitempty" toml:"input,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty" validate:"dive,min=1"`
	Status       TaskStatus     `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty" validate:"omitempty,oneof=pending ready running succeeded failed skipped"`
	Output       any            `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Error        string         `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Clone returns a copy safe for snapshotting. Input values and Output are
// opaque and never mutated after being recorded, so sharing them is fine;
// the map and slice headers are copied.
func (t Task) Clone() Task {
	c := t
	if t.Input != nil {
		c.Input = make(map[string]any, len(t.Input))
		for k, v := range t.Input {
			c.Input[k] = v
		}
	}
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	return c
}

// TaskList is the ordered set of tasks for one flow run, as produced by
// the planner or loaded from a task-list file. Order is significant: among
// simultaneously ready tasks the executor always picks the earliest.
type TaskList struct {
	Goal  string `json:"goal,omitempty" yaml:"goal,omitempty" toml:"goal,omitempty"`
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"required,min=1,dive"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a task in its initial state.
func NewTask(id, tool string) *Task {
	return &Task{
		ID:           id,
		Tool:         tool,
		Status:       StatusPending,
		Input:        map[string]any{},
		Dependencies: []string{},
	}
}
