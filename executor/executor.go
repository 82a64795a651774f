/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package executor drives a registry to completion, one task at a time.
// Sequential execution is deliberate: a task's dependency outputs are
// fully materialized and injected before it runs, with no synchronization.
// Parallelizing independent tasks is a future enhancement, not done here.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/registry"
)

// Invoker executes a single tool call. Implementations live behind this
// boundary (local tool table, MCP client); the executor treats every tool
// identically and never interprets tool-specific semantics.
type Invoker interface {
	Invoke(ctx context.Context, tool string, input map[string]any) (any, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, tool string, input map[string]any) (any, error)

func (f InvokerFunc) Invoke(ctx context.Context, tool string, input map[string]any) (any, error) {
	return f(ctx, tool, input)
}

// ConsistencyError reports the stall condition: no task is ready but the
// registry is not complete. Given the registry's propagation rules every
// non-terminal task is either ready or eventually skipped, so hitting this
// means a bug in the status bookkeeping, not bad user input.
type ConsistencyError struct {
	Remaining []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("no ready tasks but %d tasks are not terminal: %v", len(e.Remaining), e.Remaining)
}

// Options configures a single run.
type Options struct {
	// TaskTimeout bounds each tool invocation; zero means no per-task
	// deadline. A timed-out invocation is recorded as failed, it does not
	// abort the run.
	TaskTimeout time.Duration
	// Log receives one line per significant event; nil disables logging.
	Log func(format string, args ...any)
}

// Executor runs one registry to completion against one invoker.
type Executor struct {
	invoker Invoker
	opts    Options
}

// New creates an executor that delegates tool calls to invoker.
func New(invoker Invoker, opts Options) *Executor {
	if opts.Log == nil {
		opts.Log = func(string, ...any) {}
	}
	return &Executor{invoker: invoker, opts: opts}
}

// Run drives the registry until every task is terminal and returns the
// final snapshot. Tool failures are contained to their task and its
// transitive dependents; Run itself only errors on a cancelled context or
// on the internal-consistency invariant being violated.
func (e *Executor) Run(ctx context.Context, reg *registry.Registry) ([]models.Task, error) {
	for !reg.IsComplete() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		ready := reg.ReadyTasks()
		if len(ready) == 0 {
			var remaining []string
			for _, t := range reg.Snapshot() {
				if !t.Status.IsTerminal() {
					remaining = append(remaining, t.ID)
				}
			}
			return nil, &ConsistencyError{Remaining: remaining}
		}

		t := ready[0]
		if err := reg.MarkRunning(t.ID); err != nil {
			return nil, fmt.Errorf("mark running: %w", err)
		}

		input, err := e.resolveInput(reg, t)
		if err != nil {
			// Unreachable for registries built by Load, which rejects
			// references outside the dependency set.
			e.opts.Log("task %s: %v", t.ID, err)
			if recErr := reg.RecordResult(t.ID, registry.Failed(err.Error())); recErr != nil {
				return nil, recErr
			}
			continue
		}

		e.opts.Log("task %s: invoking tool %q", t.ID, t.Tool)
		output, invokeErr := e.invoke(ctx, t.Tool, input)

		var outcome registry.Outcome
		if invokeErr != nil {
			e.opts.Log("task %s: failed: %v", t.ID, invokeErr)
			outcome = registry.Failed(invokeErr.Error())
		} else {
			e.opts.Log("task %s: succeeded", t.ID)
			outcome = registry.Succeeded(output)
		}
		if err := reg.RecordResult(t.ID, outcome); err != nil {
			return nil, fmt.Errorf("record result: %w", err)
		}
	}

	return reg.Snapshot(), nil
}

// invoke applies the per-task timeout around a single tool call.
func (e *Executor) invoke(ctx context.Context, tool string, input map[string]any) (any, error) {
	if e.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.TaskTimeout)
		defer cancel()
	}
	output, err := e.invoker.Invoke(ctx, tool, input)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("tool %q timed out after %s", tool, e.opts.TaskTimeout)
	}
	return output, err
}

// resolveInput substitutes every task-output reference in the input with
// the referenced task's recorded output. Referenced tasks are guaranteed
// succeeded by the ready invariant.
func (e *Executor) resolveInput(reg *registry.Registry, t models.Task) (map[string]any, error) {
	if t.Input == nil {
		return nil, nil
	}
	out := make(map[string]any, len(t.Input))
	for k, v := range t.Input {
		resolved, err := e.resolveValue(reg, t.ID, v)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	return out, nil
}

func (e *Executor) resolveValue(reg *registry.Registry, taskID string, v any) (any, error) {
	if ref, ok := models.AsOutputRef(v); ok {
		output, ok := reg.Output(ref.TaskID)
		if !ok {
			return nil, fmt.Errorf("unresolvable reference to output of %q", ref.TaskID)
		}
		return output, nil
	}
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			resolved, err := e.resolveValue(reg, taskID, inner)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			resolved, err := e.resolveValue(reg, taskID, inner)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}
