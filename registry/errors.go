/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package registry

import "fmt"

// ValidationError reports a structurally invalid task list: a missing or
// duplicate id, a dependency on an unknown or self id, a dependency cycle,
// or an input reference outside the task's declared dependencies. It is
// raised by Load before any task executes.
type ValidationError struct {
	TaskID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("invalid task list: %s", e.Reason)
	}
	return fmt.Sprintf("invalid task %q: %s", e.TaskID, e.Reason)
}

func validationErr(taskID, format string, args ...any) *ValidationError {
	return &ValidationError{TaskID: taskID, Reason: fmt.Sprintf(format, args...)}
}
