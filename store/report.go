/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/FlowWing/models"
)

const writeAppendFlags = os.O_CREATE | os.O_WRONLY | os.O_APPEND

// RunReport is the record of one completed flow run: the terminal state
// of every task plus the synthesized answer, if any.
type RunReport struct {
	RunID      string        `json:"runId"`
	Goal       string        `json:"goal,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Tasks      []models.Task `json:"tasks"`
	Answer     string        `json:"answer,omitempty"`
}

// Counts tallies tasks by terminal status.
func (r *RunReport) Counts() (succeeded, failed, skipped int) {
	for _, t := range r.Tasks {
		switch t.Status {
		case models.StatusSucceeded:
			succeeded++
		case models.StatusFailed:
			failed++
		case models.StatusSkipped:
			skipped++
		}
	}
	return
}

// WriteReport appends the report as one JSON line to the run log.
func (s *TaskListStore) WriteReport(path string, report RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := s.fs.OpenFile(path, writeAppendFlags, 0o644)
	if err != nil {
		return fmt.Errorf("open run log %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log %s: %w", path, err)
	}
	return nil
}
