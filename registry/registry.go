/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package registry holds the task set for a single flow run and tracks
// status transitions. One registry per user request: created by Load,
// mutated in place by the executor, read in full by the synthesizer,
// then discarded. It is not safe for concurrent use and does not need to
// be; execution within a run is strictly sequential.
package registry

import (
	"github.com/josephgoksu/FlowWing/models"
)

// Registry owns the id → task mapping for one run.
type Registry struct {
	order      []string
	tasks      map[string]*models.Task
	dependents map[string][]string
}

// Outcome is the terminal result of one task invocation.
type Outcome struct {
	Output any
	Err    string
}

// Succeeded builds a successful outcome carrying the tool's output.
func Succeeded(output any) Outcome { return Outcome{Output: output} }

// Failed builds a failed outcome carrying a human-readable reason.
func Failed(reason string) Outcome { return Outcome{Err: reason} }

// Load validates the task list and builds a runnable registry.
// Validation covers: non-empty unique ids, dependency ids present in the
// same list, no self-dependencies, no cycles, and every input output-
// reference targeting a declared dependency. Any violation returns a
// *ValidationError naming the offending task; the registry is unusable.
//
// On success every task starts pending, with tasks that have no
// dependencies promoted to ready immediately.
func Load(tasks []models.Task) (*Registry, error) {
	if len(tasks) == 0 {
		return nil, validationErr("", "task list is empty")
	}

	r := &Registry{
		tasks:      make(map[string]*models.Task, len(tasks)),
		dependents: make(map[string][]string),
	}

	for _, t := range tasks {
		if t.ID == "" {
			return nil, validationErr("", "task ID cannot be empty")
		}
		if _, dup := r.tasks[t.ID]; dup {
			return nil, validationErr(t.ID, "duplicate task id")
		}
		if t.Tool == "" {
			return nil, validationErr(t.ID, "tool name cannot be empty")
		}
		c := t.Clone()
		c.Input = models.NormalizeInput(c.Input)
		c.Status = models.StatusPending
		c.Output = nil
		c.Error = ""
		r.tasks[t.ID] = &c
		r.order = append(r.order, t.ID)
	}

	for _, id := range r.order {
		t := r.tasks[id]
		for _, dep := range t.Dependencies {
			if dep == id {
				return nil, validationErr(id, "task depends on itself")
			}
			if _, ok := r.tasks[dep]; !ok {
				return nil, validationErr(id, "unknown dependency %q", dep)
			}
			r.dependents[dep] = append(r.dependents[dep], id)
		}
		// Typed output references must be backed by a declared dependency,
		// otherwise the referenced output may not exist at execution time.
		declared := make(map[string]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			declared[dep] = true
		}
		for _, ref := range models.ReferencedTasks(t.Input) {
			if !declared[ref] {
				return nil, validationErr(id, "input references output of %q, which is not a declared dependency", ref)
			}
		}
	}

	if err := r.verifyAcyclic(); err != nil {
		return nil, err
	}

	for _, id := range r.order {
		t := r.tasks[id]
		if len(t.Dependencies) == 0 {
			t.Status = models.StatusReady
		}
	}

	return r, nil
}

// verifyAcyclic runs a DFS cycle check over the dependency edges.
func (r *Registry) verifyAcyclic() error {
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	var checkCycle func(taskID string) error
	checkCycle = func(taskID string) error {
		visited[taskID] = true
		recursionStack[taskID] = true

		for _, depID := range r.tasks[taskID].Dependencies {
			if !visited[depID] {
				if err := checkCycle(depID); err != nil {
					return err
				}
			} else if recursionStack[depID] {
				return validationErr(taskID, "dependency cycle via %q", depID)
			}
		}

		recursionStack[taskID] = false
		return nil
	}

	for _, id := range r.order {
		if !visited[id] {
			if err := checkCycle(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get returns a copy of the task with the given id.
func (r *Registry) Get(id string) (models.Task, bool) {
	t, ok := r.tasks[id]
	if !ok {
		return models.Task{}, false
	}
	return t.Clone(), true
}

// Output returns the recorded output of a succeeded task.
func (r *Registry) Output(id string) (any, bool) {
	t, ok := r.tasks[id]
	if !ok || t.Status != models.StatusSucceeded {
		return nil, false
	}
	return t.Output, true
}

// ReadyTasks returns the tasks currently ready, in original task-list
// order. The order is a determinism guarantee, not a scheduling policy.
func (r *Registry) ReadyTasks() []models.Task {
	var ready []models.Task
	for _, id := range r.order {
		if t := r.tasks[id]; t.Status == models.StatusReady {
			ready = append(ready, t.Clone())
		}
	}
	return ready
}

// MarkRunning transitions a ready task to running.
func (r *Registry) MarkRunning(id string) error {
	t, ok := r.tasks[id]
	if !ok {
		return validationErr(id, "unknown task")
	}
	if t.Status != models.StatusReady {
		return validationErr(id, "cannot run task in status %q", t.Status)
	}
	t.Status = models.StatusRunning
	return nil
}

// RecordResult records the terminal outcome of a running task, then
// re-evaluates its dependents: tasks whose dependencies are now all
// succeeded become ready; tasks downstream of a failure (or of a skip)
// become skipped, transitively. Output and error are write-once because a
// task can only be running once.
func (r *Registry) RecordResult(id string, outcome Outcome) error {
	t, ok := r.tasks[id]
	if !ok {
		return validationErr(id, "unknown task")
	}
	if t.Status != models.StatusRunning {
		return validationErr(id, "cannot record result for task in status %q", t.Status)
	}

	if outcome.Err != "" {
		t.Status = models.StatusFailed
		t.Error = outcome.Err
		r.skipDependents(id)
		return nil
	}

	t.Status = models.StatusSucceeded
	t.Output = outcome.Output
	r.promoteReady()
	return nil
}

// promoteReady moves every pending task whose dependencies have all
// succeeded to ready.
func (r *Registry) promoteReady() {
	for _, id := range r.order {
		t := r.tasks[id]
		if t.Status != models.StatusPending {
			continue
		}
		satisfied := true
		for _, dep := range t.Dependencies {
			if r.tasks[dep].Status != models.StatusSucceeded {
				satisfied = false
				break
			}
		}
		if satisfied {
			t.Status = models.StatusReady
		}
	}
}

// skipDependents marks every transitive dependent of id as skipped.
// Failure propagates forward only; independent subtrees are untouched.
func (r *Registry) skipDependents(id string) {
	for _, dep := range r.dependents[id] {
		t := r.tasks[dep]
		if t.Status == models.StatusPending || t.Status == models.StatusReady {
			t.Status = models.StatusSkipped
			r.skipDependents(dep)
		}
	}
}

// IsComplete reports whether every task has reached a terminal status.
func (r *Registry) IsComplete() bool {
	for _, id := range r.order {
		if !r.tasks[id].Status.IsTerminal() {
			return false
		}
	}
	return true
}

// Len returns the number of tasks in the registry.
func (r *Registry) Len() int { return len(r.order) }

// Snapshot returns a point-in-time copy of every task in original order.
func (r *Registry) Snapshot() []models.Task {
	out := make([]models.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id].Clone())
	}
	return out
}
