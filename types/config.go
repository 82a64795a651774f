/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"omitempty"`
	Execution ExecutionConfig `mapstructure:"execution" validate:"required"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir       string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir  string `mapstructure:"templatesDir" validate:"omitempty"`
	OutputLogPath string `mapstructure:"outputLogPath" validate:"required"`
}

// DataConfig holds task-list file defaults
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the planner and synthesizer agents
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai ollama anthropic gemini"`
	// ModelName is the chat model used for planning and synthesis
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// BaseURL is only used by the ollama provider
	BaseURL string `mapstructure:"baseUrl" validate:"omitempty,url"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
}

// ExecutionConfig holds executor settings
type ExecutionConfig struct {
	// TaskTimeoutSeconds bounds a single tool invocation; 0 disables the
	// per-task deadline. A timed-out task is failed, the run continues.
	TaskTimeoutSeconds int `mapstructure:"taskTimeoutSeconds" validate:"min=0,max=3600"`
	// MCPServer optionally routes tool calls to an external MCP server
	// command instead of the built-in tools.
	MCPServer     string   `mapstructure:"mcpServer" validate:"omitempty"`
	MCPServerArgs []string `mapstructure:"mcpServerArgs" validate:"omitempty"`
}
