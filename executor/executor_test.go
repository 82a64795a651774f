/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/registry"
)

// chainTasks is the canonical three-step pipeline: multiply, feed into
// add, feed into encrypt.
func chainTasks() []models.Task {
	return []models.Task{
		{ID: "t1", Tool: "multiply", Input: map[string]any{"a": 342.0, "b": 32.0}},
		{ID: "t2", Tool: "add", Input: map[string]any{
			"a": models.TaskOutputRef{TaskID: "t1"},
			"b": 321.0,
		}, Dependencies: []string{"t1"}},
		{ID: "t3", Tool: "encrypt", Input: map[string]any{
			"text": models.TaskOutputRef{TaskID: "t2"},
		}, Dependencies: []string{"t2"}},
	}
}

func TestRun_ChainedPipeline(t *testing.T) {
	reg, err := registry.Load(chainTasks())
	if err != nil {
		t.Fatal(err)
	}

	var calls []string
	invoker := InvokerFunc(func(_ context.Context, tool string, input map[string]any) (any, error) {
		calls = append(calls, tool)
		switch tool {
		case "multiply":
			return 10944.0, nil
		case "add":
			if input["a"] != 10944.0 {
				t.Errorf("add received a = %v, want resolved output 10944", input["a"])
			}
			return 11265.0, nil
		case "encrypt":
			if input["text"] != 11265.0 {
				t.Errorf("encrypt received text = %v, want resolved output 11265", input["text"])
			}
			return "MTEyNjU=", nil
		}
		return nil, fmt.Errorf("unexpected tool %q", tool)
	})

	snapshot, err := New(invoker, Options{}).Run(context.Background(), reg)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, task := range snapshot {
		if task.Status != models.StatusSucceeded {
			t.Errorf("task %s status = %s, want succeeded", task.ID, task.Status)
		}
	}
	if snapshot[2].Output != "MTEyNjU=" {
		t.Errorf("t3 output = %v, want MTEyNjU=", snapshot[2].Output)
	}
	if want := []string{"multiply", "add", "encrypt"}; strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("invocation order = %v, want %v", calls, want)
	}
}

func TestRun_FailureSkipsDependents(t *testing.T) {
	reg, err := registry.Load(chainTasks())
	if err != nil {
		t.Fatal(err)
	}

	var calls []string
	invoker := InvokerFunc(func(_ context.Context, tool string, _ map[string]any) (any, error) {
		calls = append(calls, tool)
		return nil, errors.New("multiply exploded")
	})

	snapshot, err := New(invoker, Options{}).Run(context.Background(), reg)
	if err != nil {
		t.Fatalf("tool failure must not abort the run, got: %v", err)
	}

	wantStatus := map[string]models.TaskStatus{
		"t1": models.StatusFailed,
		"t2": models.StatusSkipped,
		"t3": models.StatusSkipped,
	}
	for _, task := range snapshot {
		if task.Status != wantStatus[task.ID] {
			t.Errorf("task %s status = %s, want %s", task.ID, task.Status, wantStatus[task.ID])
		}
	}
	if len(calls) != 1 || calls[0] != "multiply" {
		t.Errorf("skipped tasks were invoked: %v", calls)
	}

	if snapshot[0].Error != "multiply exploded" {
		t.Errorf("t1 error = %q", snapshot[0].Error)
	}
}

func TestRun_IndependentTasksInListOrder(t *testing.T) {
	reg, err := registry.Load([]models.Task{
		{ID: "T2", Tool: "a"},
		{ID: "T1", Tool: "b"},
		{ID: "T3", Tool: "c"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var order []string
	invoker := InvokerFunc(func(_ context.Context, tool string, _ map[string]any) (any, error) {
		order = append(order, tool)
		return "ok", nil
	})

	if _, err := New(invoker, Options{}).Run(context.Background(), reg); err != nil {
		t.Fatal(err)
	}
	if want := "a,b,c"; strings.Join(order, ",") != want {
		t.Errorf("execution order = %v, want original list order", order)
	}
}

func TestRun_LiteralInputsPassThrough(t *testing.T) {
	reg, err := registry.Load([]models.Task{
		{ID: "t1", Tool: "echo", Input: map[string]any{
			"note":   "42",
			"nested": map[string]any{"list": []any{"output of nowhere?", 7.0}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	invoker := InvokerFunc(func(_ context.Context, _ string, input map[string]any) (any, error) {
		if input["note"] != "42" {
			t.Errorf("literal string mangled: %v", input["note"])
		}
		nested := input["nested"].(map[string]any)
		list := nested["list"].([]any)
		// Does not match the reference grammar, so it stays a literal.
		if list[0] != "output of nowhere?" {
			t.Errorf("non-reference string mangled: %v", list[0])
		}
		return "ok", nil
	})

	if _, err := New(invoker, Options{}).Run(context.Background(), reg); err != nil {
		t.Fatal(err)
	}
}

func TestRun_TaskTimeout(t *testing.T) {
	reg, err := registry.Load([]models.Task{
		{ID: "slow", Tool: "sleep"},
		{ID: "after", Tool: "noop", Dependencies: []string{"slow"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	invoker := InvokerFunc(func(ctx context.Context, tool string, _ map[string]any) (any, error) {
		if tool == "sleep" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return "ok", nil
	})

	snapshot, err := New(invoker, Options{TaskTimeout: 10 * time.Millisecond}).Run(context.Background(), reg)
	if err != nil {
		t.Fatalf("timeout must be contained to the task, got: %v", err)
	}

	if snapshot[0].Status != models.StatusFailed {
		t.Errorf("slow status = %s, want failed", snapshot[0].Status)
	}
	if !strings.Contains(snapshot[0].Error, "timed out") {
		t.Errorf("slow error = %q, want timeout message", snapshot[0].Error)
	}
	if snapshot[1].Status != models.StatusSkipped {
		t.Errorf("after status = %s, want skipped", snapshot[1].Status)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	reg, err := registry.Load([]models.Task{{ID: "t1", Tool: "noop"}})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	invoker := InvokerFunc(func(context.Context, string, map[string]any) (any, error) {
		t.Error("invoker called after cancellation")
		return nil, nil
	})

	if _, err := New(invoker, Options{}).Run(ctx, reg); err == nil {
		t.Error("Run() should fail on a cancelled context")
	}
}
