/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/FlowWing/planner"
	"github.com/josephgoksu/FlowWing/store"
	"github.com/josephgoksu/FlowWing/tools"
	"github.com/spf13/cobra"
)

var planOutputPath string

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <goal>",
	Short: "Decompose a goal into a task list",
	Long: `Ask the configured LLM to decompose a goal into a dependency-ordered
task list over the available tools, and write it to a task-list file.

The generated list is validated (known tools, resolvable dependencies,
no cycles) before it is written; invalid model output is fed back to the
model for correction.

Examples:
  flowwing plan "multiply 342 by 32, add 321, then base64 the result"
  flowwing plan "..." -o plans/my-flow.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planOutputPath, "output", "o", "", "task-list file to write (default: the configured data file)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	goal := strings.TrimSpace(strings.Join(args, " "))

	gen := planner.NewGenerator(planner.Config{
		LLM:          llmConfig(),
		TemplatesDir: GetConfig().Project.TemplatesDir,
	})

	available := tools.NewLocalInvoker().Tools()
	list, err := gen.GenerateTasks(cmd.Context(), goal, available)
	if err != nil {
		return fmt.Errorf("plan goal: %w", err)
	}

	path := planOutputPath
	if path == "" {
		path = GetConfig().Data.File
	}
	if err := store.NewTaskListStore(nil).Save(path, list); err != nil {
		return err
	}

	cmd.Printf("Planned %d task(s) → %s\n", len(list.Tasks), path)
	for _, t := range list.Tasks {
		deps := "none"
		if len(t.Dependencies) > 0 {
			deps = strings.Join(t.Dependencies, ", ")
		}
		cmd.Printf("  %s: %s (tool=%s, deps=%s)\n", t.ID, t.Description, t.Tool, deps)
	}
	return nil
}
