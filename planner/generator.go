/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/

// Package planner holds the two LLM-backed agents around the executor
// core: the task planner (goal → task list) and the response synthesizer
// (terminal snapshot → user-facing answer). Both treat the chat model as
// an opaque function with a contracted input/output shape.
package planner

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/FlowWing/internal/utils"
	"github.com/josephgoksu/FlowWing/llm"
	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/prompts"
	"github.com/josephgoksu/FlowWing/tools"
)

const (
	// MaxGenerationRetries is the maximum number of attempts when the
	// model returns unparseable or invalid plans.
	MaxGenerationRetries = 3

	// RetryDelay is the delay between retries.
	RetryDelay = 500 * time.Millisecond
)

// Config configures the planner agents.
type Config struct {
	LLM llm.Config
	// TemplatesDir optionally overrides the built-in prompts.
	TemplatesDir string
}

// Generator produces validated task lists from a chat model.
type Generator struct {
	cfg       Config
	chatModel model.BaseChatModel
}

// NewGenerator creates a planner backed by the configured provider.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// NewGeneratorWithModel injects a chat model directly; used by tests.
func NewGeneratorWithModel(cfg Config, chatModel model.BaseChatModel) *Generator {
	return &Generator{cfg: cfg, chatModel: chatModel}
}

// GenerateTasks asks the model to decompose goal into a task list over
// the given tools. Invalid responses are fed back to the model with the
// validation errors for self-correction, up to MaxGenerationRetries.
func (g *Generator) GenerateTasks(ctx context.Context, goal string, available []tools.Tool) (models.TaskList, error) {
	if strings.TrimSpace(goal) == "" {
		return models.TaskList{}, fmt.Errorf("goal cannot be empty")
	}

	promptText, err := prompts.GetPrompt(prompts.KeyPlanTasks, g.cfg.TemplatesDir)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("load planner prompt: %w", err)
	}
	tmpl, err := template.New("plan").Parse(promptText)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("parse planner prompt: %w", err)
	}

	if g.chatModel == nil {
		cm, err := llm.NewChatModel(ctx, g.cfg.LLM)
		if err != nil {
			return models.TaskList{}, fmt.Errorf("create chat model: %w", err)
		}
		g.chatModel = cm
	}

	knownTools := make(map[string]bool, len(available))
	for _, t := range available {
		knownTools[t.Name] = true
	}

	var lastErr error
	var validationErrors string
	for attempt := 1; attempt <= MaxGenerationRetries; attempt++ {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, map[string]any{
			"Goal":             goal,
			"Tools":            describeTools(available),
			"ValidationErrors": validationErrors,
		}); err != nil {
			return models.TaskList{}, fmt.Errorf("execute planner prompt: %w", err)
		}

		resp, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(buf.String())})
		if err != nil {
			return models.TaskList{}, fmt.Errorf("LLM generate: %w", err)
		}

		plan, err := utils.ExtractAndParseJSON[PlanResponse](resp.Content)
		if err != nil {
			lastErr = fmt.Errorf("parse plan (attempt %d): %w", attempt, err)
			validationErrors = fmt.Sprintf("JSON parse error: %v", err)
			time.Sleep(RetryDelay)
			continue
		}

		if err := plan.Validate(goal, knownTools); err != nil {
			lastErr = fmt.Errorf("invalid plan (attempt %d): %w", attempt, err)
			validationErrors = err.Error()
			time.Sleep(RetryDelay)
			continue
		}

		return plan.TaskList(goal), nil
	}

	return models.TaskList{}, fmt.Errorf("planning failed after %d attempts: %w", MaxGenerationRetries, lastErr)
}

// describeTools renders the tool list for the prompt.
func describeTools(available []tools.Tool) string {
	var b strings.Builder
	for _, t := range available {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return b.String()
}
