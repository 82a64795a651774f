/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package store reads and writes the file artifacts around a flow run:
// task-list files (the planner's output, the executor's input) and run
// reports. The registry itself is never persisted; reports are output
// artifacts, not execution state.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/FlowWing/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// TaskListStore loads and saves ordered task lists.
type TaskListStore struct {
	fs afero.Fs
}

// NewTaskListStore creates a store over the given filesystem; nil means
// the OS filesystem. Tests pass afero.NewMemMapFs().
func NewTaskListStore(fs afero.Fs) *TaskListStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &TaskListStore{fs: fs}
}

// Load reads, decodes, and normalizes a task list. The format follows the
// file extension (.json, .yaml/.yml, .toml). Output references inside
// task inputs are normalized to their typed form here, so malformed files
// fail before any execution.
func (s *TaskListStore) Load(path string) (models.TaskList, error) {
	var list models.TaskList

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return list, fmt.Errorf("read task list %s: %w", path, err)
	}

	format, err := formatForPath(path)
	if err != nil {
		return list, err
	}

	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &list); err != nil {
			return list, fmt.Errorf("parse JSON task list %s: %w", path, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &list); err != nil {
			return list, fmt.Errorf("parse YAML task list %s: %w", path, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &list); err != nil {
			return list, fmt.Errorf("parse TOML task list %s: %w", path, err)
		}
	}

	if err := models.ValidateStruct(&list); err != nil {
		return list, fmt.Errorf("invalid task list %s: %w", path, err)
	}
	for i := range list.Tasks {
		list.Tasks[i].Input = models.NormalizeInput(list.Tasks[i].Input)
	}
	return list, nil
}

// Save writes the task list in the format implied by the extension.
func (s *TaskListStore) Save(path string, list models.TaskList) error {
	format, err := formatForPath(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(list, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(list)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(list)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode task list: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write task list %s: %w", path, err)
	}
	return nil
}

func formatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return "", fmt.Errorf("unsupported task list format for %s (use .json, .yaml, or .toml)", path)
	}
}
