/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import "regexp"

// TaskOutputRef is a typed reference to another task's output, used as a
// value inside Task.Input. It replaces the string templating the n8n
// workflow used ("output of task X"): a reference is a structural value
// resolved by id lookup, so an unresolvable one is a load-time error
// instead of a template string leaking into a tool call.
type TaskOutputRef struct {
	TaskID string `json:"taskOutput" yaml:"taskOutput" toml:"taskOutput"`
}

// legacy planner phrasing: "output of t1" / "output of task t1"
var legacyRefPattern = regexp.MustCompile(`^output of (?:task )?([A-Za-z0-9_.-]+)$`)

// AsOutputRef reports whether v is a task-output reference in any of its
// accepted encodings and, if so, returns the normalized form:
//   - models.TaskOutputRef (already normalized)
//   - map with a single "taskOutput" key (decoded JSON/YAML object form)
//   - the legacy "output of <id>" string emitted by LLM planners
func AsOutputRef(v any) (TaskOutputRef, bool) {
	switch val := v.(type) {
	case TaskOutputRef:
		return val, true
	case *TaskOutputRef:
		if val != nil {
			return *val, true
		}
	case string:
		if m := legacyRefPattern.FindStringSubmatch(val); m != nil {
			return TaskOutputRef{TaskID: m[1]}, true
		}
	case map[string]any:
		if len(val) == 1 {
			if id, ok := val["taskOutput"].(string); ok && id != "" {
				return TaskOutputRef{TaskID: id}, true
			}
		}
	}
	return TaskOutputRef{}, false
}

// NormalizeInput rewrites every output reference in input to its typed
// form, recursing into nested maps and slices. The original map is not
// modified.
func NormalizeInput(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	if ref, ok := AsOutputRef(v); ok {
		return ref
	}
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}

// ReferencedTasks returns the ids of every task referenced from input,
// after normalization. Duplicates are removed; order is unspecified.
func ReferencedTasks(input map[string]any) []string {
	seen := map[string]bool{}
	var walk func(v any)
	walk = func(v any) {
		if ref, ok := AsOutputRef(v); ok {
			seen[ref.TaskID] = true
			return
		}
		switch val := v.(type) {
		case map[string]any:
			for _, inner := range val {
				walk(inner)
			}
		case []any:
			for _, inner := range val {
				walk(inner)
			}
		}
	}
	for _, v := range input {
		walk(v)
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}
