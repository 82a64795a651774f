/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/FlowWing/executor"
	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/planner"
	"github.com/josephgoksu/FlowWing/registry"
	"github.com/josephgoksu/FlowWing/store"
	"github.com/josephgoksu/FlowWing/tools"
	"github.com/spf13/cobra"
)

var runMCPServerCommand string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [tasklist]",
	Short: "Execute a task list",
	Long: `Execute a task-list file with the dependency-driven executor.

Tasks run strictly one at a time, in task-list order among ready tasks.
A failed task is recorded and its dependents are skipped; independent
tasks still run. The command exits non-zero if any task failed.

Examples:
  flowwing run tasks.yaml
  flowwing run tasks.json --mcp-server "python -m my_mcp_server"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runMCPServerCommand, "mcp-server", "", "execute tasks against this MCP server command instead of the built-in tools")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := GetConfig().Data.File
	if len(args) > 0 {
		path = args[0]
	}

	st := store.NewTaskListStore(nil)
	list, err := st.Load(path)
	if err != nil {
		return err
	}

	report, err := executeTaskList(cmd.Context(), list)
	if err != nil {
		return err
	}

	printReport(cmd, report)

	if logPath := GetConfig().Project.OutputLogPath; logPath != "" {
		if err := st.WriteReport(logPath, *report); err != nil {
			logVerbose("write run log: %v", err)
		}
	}

	if _, failed, _ := report.Counts(); failed > 0 {
		return fmt.Errorf("%d task(s) failed", failed)
	}
	return nil
}

// executeTaskList is the shared load → execute path behind run and flow.
func executeTaskList(ctx context.Context, list models.TaskList) (*store.RunReport, error) {
	reg, err := registry.Load(list.Tasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	invoker, cleanup, err := buildInvoker(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	exec := executor.New(invoker, executor.Options{
		TaskTimeout: taskTimeout(),
		Log:         logVerbose,
	})

	startedAt := time.Now()
	snapshot, err := exec.Run(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("execute tasks: %w", err)
	}

	return &store.RunReport{
		RunID:      uuid.NewString(),
		Goal:       list.Goal,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Tasks:      snapshot,
	}, nil
}

// buildInvoker picks the tool boundary for this run: an external MCP
// server when configured, the built-in tools otherwise.
func buildInvoker(ctx context.Context) (executor.Invoker, func(), error) {
	command := runMCPServerCommand
	serverArgs := GetConfig().Execution.MCPServerArgs
	if command == "" {
		command = GetConfig().Execution.MCPServer
	}
	if command == "" {
		return tools.NewLocalInvoker(), func() {}, nil
	}

	logVerbose("connecting to MCP server: %s", command)
	inv, err := tools.NewMCPInvoker(ctx, version, command, serverArgs...)
	if err != nil {
		return nil, nil, err
	}
	return inv, func() { _ = inv.Close() }, nil
}

func printReport(cmd *cobra.Command, report *store.RunReport) {
	succeeded, failed, skipped := report.Counts()
	cmd.Printf("Run %s: %d succeeded, %d failed, %d skipped\n\n", report.RunID, succeeded, failed, skipped)
	cmd.Print(planner.RenderReport(report.Tasks))
}
