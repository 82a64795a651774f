/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package store

import (
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/FlowWing/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() models.TaskList {
	return models.TaskList{
		Goal: "chain the calculators",
		Tasks: []models.Task{
			{ID: "t1", Tool: "multiply", Input: map[string]any{"a": 342.0, "b": 32.0}, Status: models.StatusPending},
			{ID: "t2", Tool: "add", Dependencies: []string{"t1"}, Status: models.StatusPending, Input: map[string]any{
				"a": map[string]any{"taskOutput": "t1"},
				"b": 321.0,
			}},
		},
	}
}

func TestTaskListStore_SaveLoad(t *testing.T) {
	for _, path := range []string{"lists/tasks.json", "lists/tasks.yaml", "lists/tasks.toml"} {
		t.Run(path, func(t *testing.T) {
			store := NewTaskListStore(afero.NewMemMapFs())
			require.NoError(t, store.Save(path, sampleList()))

			got, err := store.Load(path)
			require.NoError(t, err)

			assert.Equal(t, "chain the calculators", got.Goal)
			require.Len(t, got.Tasks, 2)
			assert.Equal(t, "t1", got.Tasks[0].ID)
			assert.Equal(t, []string{"t1"}, got.Tasks[1].Dependencies)

			// The object-form reference must come back typed.
			ref, ok := models.AsOutputRef(got.Tasks[1].Input["a"])
			require.True(t, ok, "reference not normalized, got %T", got.Tasks[1].Input["a"])
			assert.Equal(t, "t1", ref.TaskID)
		})
	}
}

func TestTaskListStore_TypedRefSurvivesEveryFormat(t *testing.T) {
	// A planned list carries refs in their typed form; run must see the
	// same reference back no matter which file format sits in between.
	list := models.TaskList{
		Goal: "typed refs",
		Tasks: []models.Task{
			{ID: "t1", Tool: "multiply", Status: models.StatusPending, Input: map[string]any{"a": 342.0, "b": 32.0}},
			{ID: "t2", Tool: "encrypt", Status: models.StatusPending, Dependencies: []string{"t1"}, Input: map[string]any{
				"text": models.TaskOutputRef{TaskID: "t1"},
			}},
		},
	}

	for _, path := range []string{"plan.json", "plan.yaml", "plan.toml"} {
		t.Run(path, func(t *testing.T) {
			store := NewTaskListStore(afero.NewMemMapFs())
			require.NoError(t, store.Save(path, list))

			got, err := store.Load(path)
			require.NoError(t, err)

			ref, ok := models.AsOutputRef(got.Tasks[1].Input["text"])
			require.True(t, ok, "typed ref lost in round-trip: %#v", got.Tasks[1].Input["text"])
			assert.Equal(t, "t1", ref.TaskID)
		})
	}
}

func TestTaskListStore_LoadNormalizesLegacyRefs(t *testing.T) {
	fs := afero.NewMemMapFs()
	yamlDoc := `
goal: legacy pipeline
tasks:
  - id: t1
    tool: multiply
    status: pending
    input:
      a: 342
      b: 32
  - id: t2
    tool: encrypt
    status: pending
    dependencies: [t1]
    input:
      text: output of task t1
`
	require.NoError(t, afero.WriteFile(fs, "legacy.yaml", []byte(yamlDoc), 0o644))

	list, err := NewTaskListStore(fs).Load("legacy.yaml")
	require.NoError(t, err)

	ref, ok := models.AsOutputRef(list.Tasks[1].Input["text"])
	require.True(t, ok, "legacy string reference not normalized")
	assert.Equal(t, "t1", ref.TaskID)
}

func TestTaskListStore_LoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte("{not json"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "empty.yaml", []byte("goal: g\ntasks: []\n"), 0o644))
	store := NewTaskListStore(fs)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: "nope.json"},
		{name: "malformed json", path: "bad.json"},
		{name: "empty task list fails validation", path: "empty.yaml"},
		{name: "unsupported extension", path: "tasks.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestWriteReport_AppendsJSONLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewTaskListStore(fs)

	report := RunReport{
		RunID:      "run-1",
		Goal:       "first",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Tasks: []models.Task{
			{ID: "t1", Tool: "add", Status: models.StatusSucceeded},
			{ID: "t2", Tool: "add", Status: models.StatusFailed},
			{ID: "t3", Tool: "add", Status: models.StatusSkipped},
		},
	}
	require.NoError(t, store.WriteReport("logs/runs.jsonl", report))
	report.RunID = "run-2"
	require.NoError(t, store.WriteReport("logs/runs.jsonl", report))

	data, err := afero.ReadFile(fs, "logs/runs.jsonl")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"runId":"run-1"`)
	assert.Contains(t, lines[1], `"runId":"run-2"`)
}

func TestRunReport_Counts(t *testing.T) {
	report := RunReport{Tasks: []models.Task{
		{Status: models.StatusSucceeded},
		{Status: models.StatusSucceeded},
		{Status: models.StatusFailed},
		{Status: models.StatusSkipped},
	}}
	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
}
