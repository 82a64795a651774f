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

var flowNoLLMSynthesis bool

// flowCmd represents the flow command
var flowCmd = &cobra.Command{
	Use:   "flow <goal>",
	Short: "Plan, execute, and synthesize in one shot",
	Long: `Run the full three-agent pipeline for a goal: the planner decomposes it
into a task list, the executor runs every task to a terminal state, and
the synthesizer writes the final answer from the complete snapshot.

Planning aborts the flow on invalid goals; execution never aborts. The
synthesizer always receives every task's terminal state, mixing
successes, failures, and skips.

Examples:
  flowwing flow "multiply 342 by 32, add 321, then base64 the result"
  flowwing flow "..." --no-llm-synthesis`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFlow,
}

func init() {
	rootCmd.AddCommand(flowCmd)
	flowCmd.Flags().BoolVar(&flowNoLLMSynthesis, "no-llm-synthesis", false, "render a deterministic report instead of asking the LLM for the final answer")
}

func runFlow(cmd *cobra.Command, args []string) error {
	goal := strings.TrimSpace(strings.Join(args, " "))
	ctx := cmd.Context()

	cfg := planner.Config{
		LLM:          llmConfig(),
		TemplatesDir: GetConfig().Project.TemplatesDir,
	}

	gen := planner.NewGenerator(cfg)
	available := tools.NewLocalInvoker().Tools()
	list, err := gen.GenerateTasks(ctx, goal, available)
	if err != nil {
		return fmt.Errorf("plan goal: %w", err)
	}
	logVerbose("planned %d task(s)", len(list.Tasks))

	report, err := executeTaskList(ctx, list)
	if err != nil {
		return err
	}

	var answer string
	if flowNoLLMSynthesis {
		answer = planner.RenderReport(report.Tasks)
	} else {
		answer, err = planner.NewSynthesizer(cfg).Synthesize(ctx, goal, report.Tasks)
		if err != nil {
			return fmt.Errorf("synthesize answer: %w", err)
		}
	}
	report.Answer = answer

	if logPath := GetConfig().Project.OutputLogPath; logPath != "" {
		if err := store.NewTaskListStore(nil).WriteReport(logPath, *report); err != nil {
			logVerbose("write run log: %v", err)
		}
	}

	cmd.Println(answer)
	return nil
}
