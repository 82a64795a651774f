/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/FlowWing/llm"
	"github.com/josephgoksu/FlowWing/models"
	"github.com/josephgoksu/FlowWing/prompts"
)

// Synthesizer turns a terminal snapshot into the user-facing answer.
type Synthesizer struct {
	cfg       Config
	chatModel model.BaseChatModel
}

// NewSynthesizer creates a synthesizer backed by the configured provider.
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// NewSynthesizerWithModel injects a chat model directly; used by tests.
func NewSynthesizerWithModel(cfg Config, chatModel model.BaseChatModel) *Synthesizer {
	return &Synthesizer{cfg: cfg, chatModel: chatModel}
}

// Synthesize produces the final answer from the run's snapshot. Every
// task is terminal at this point; the snapshot always mixes successes,
// failures, and skips, and the answer must reflect all of them.
func (s *Synthesizer) Synthesize(ctx context.Context, goal string, snapshot []models.Task) (string, error) {
	promptText, err := prompts.GetPrompt(prompts.KeySynthesizeAnswer, s.cfg.TemplatesDir)
	if err != nil {
		return "", fmt.Errorf("load synthesizer prompt: %w", err)
	}
	tmpl, err := template.New("synthesize").Parse(promptText)
	if err != nil {
		return "", fmt.Errorf("parse synthesizer prompt: %w", err)
	}

	if s.chatModel == nil {
		cm, err := llm.NewChatModel(ctx, s.cfg.LLM)
		if err != nil {
			return "", fmt.Errorf("create chat model: %w", err)
		}
		s.chatModel = cm
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Goal":    goal,
		"Results": RenderReport(snapshot),
	}); err != nil {
		return "", fmt.Errorf("execute synthesizer prompt: %w", err)
	}

	resp, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(buf.String())})
	if err != nil {
		return "", fmt.Errorf("LLM generate: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// RenderReport renders the snapshot as deterministic plain text, one task
// per line. Used both inside the synthesizer prompt and as the answer of
// record when no LLM is configured.
func RenderReport(snapshot []models.Task) string {
	var b strings.Builder
	for _, t := range snapshot {
		switch t.Status {
		case models.StatusSucceeded:
			fmt.Fprintf(&b, "%s (%s): succeeded, output=%s\n", t.ID, t.Tool, renderValue(t.Output))
		case models.StatusFailed:
			fmt.Fprintf(&b, "%s (%s): failed, error=%s\n", t.ID, t.Tool, t.Error)
		case models.StatusSkipped:
			fmt.Fprintf(&b, "%s (%s): skipped, a dependency failed\n", t.ID, t.Tool)
		default:
			fmt.Fprintf(&b, "%s (%s): %s\n", t.ID, t.Tool, t.Status)
		}
	}
	return b.String()
}

func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
