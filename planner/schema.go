/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/registry"
)

// PlanResponse is the JSON shape the planner model must return.
type PlanResponse struct {
	Tasks []PlannedTask `json:"tasks"`
}

// PlannedTask mirrors models.Task minus runtime fields.
type PlannedTask struct {
	ID           string         `json:"id"`
	Tool         string         `json:"tool"`
	Description  string         `json:"description"`
	Input        map[string]any `json:"input"`
	Dependencies []string       `json:"dependencies"`
}

// TaskList converts the response into a runnable task list. Missing ids
// are filled with generated ones; models that drop the id field entirely
// are common enough to tolerate as long as nothing depends on the task.
func (r *PlanResponse) TaskList(goal string) models.TaskList {
	list := models.TaskList{Goal: goal}
	for _, pt := range r.Tasks {
		id := strings.TrimSpace(pt.ID)
		if id == "" {
			id = "t-" + uuid.NewString()[:8]
		}
		list.Tasks = append(list.Tasks, models.Task{
			ID:           id,
			Tool:         pt.Tool,
			Description:  pt.Description,
			Input:        models.NormalizeInput(pt.Input),
			Dependencies: pt.Dependencies,
			Status:       models.StatusPending,
		})
	}
	return list
}

// Validate checks the response structurally, including a registry load
// dry-run so dependency and cycle errors are caught while we can still
// feed them back to the model for self-correction.
func (r *PlanResponse) Validate(goal string, knownTools map[string]bool) error {
	if len(r.Tasks) == 0 {
		return fmt.Errorf("plan contains no tasks")
	}

	var problems []string
	for i, pt := range r.Tasks {
		if strings.TrimSpace(pt.Tool) == "" {
			problems = append(problems, fmt.Sprintf("task %d: tool name is empty", i+1))
			continue
		}
		if knownTools != nil && !knownTools[pt.Tool] {
			problems = append(problems, fmt.Sprintf("task %d: unknown tool %q", i+1, pt.Tool))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	list := r.TaskList(goal)
	if err := models.ValidateStruct(&list); err != nil {
		return err
	}
	if _, err := registry.Load(list.Tasks); err != nil {
		return err
	}
	return nil
}
