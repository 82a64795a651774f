/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/FlowWing/llm"
	"github.com/josephgoksu/FlowWing/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".flowwing"
	envPrefix  = "FLOWWING"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present; missing is fine.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the
	// config file so env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix) // e.g., FLOWWING_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	cfgFileFlag := viper.GetString("config")
	projectConfigDir := viper.GetString("project.rootDir")

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			// Project-specific config directory exists; prefer it.
			viper.AddConfigPath(projectConfigDir)
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Error unmarshaling config:", err)
		os.Exit(1)
	}
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}
}

func setConfigDefaults() {
	viper.SetDefault("project.rootDir", ".flowwing")
	viper.SetDefault("project.templatesDir", ".flowwing/templates")
	viper.SetDefault("project.outputLogPath", ".flowwing/runs.jsonl")
	viper.SetDefault("data.file", "tasks.yaml")
	viper.SetDefault("data.format", "yaml")
	viper.SetDefault("llm.provider", string(llm.DefaultProvider))
	viper.SetDefault("llm.requestTimeoutSeconds", 60)
	viper.SetDefault("execution.taskTimeoutSeconds", 120)
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// llmConfig maps the app config onto the llm client config. The API key
// falls back to the provider's conventional environment variable so keys
// never need to live in the config file.
func llmConfig() llm.Config {
	cfg := GetConfig().LLM
	apiKey := cfg.APIKey
	if apiKey == "" {
		switch llm.Provider(cfg.Provider) {
		case llm.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case llm.ProviderAnthropic:
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		case llm.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	return llm.Config{
		Provider: llm.Provider(cfg.Provider),
		Model:    cfg.ModelName,
		APIKey:   apiKey,
		BaseURL:  cfg.BaseURL,
	}
}

// taskTimeout returns the per-task deadline from config.
func taskTimeout() time.Duration {
	return time.Duration(GetConfig().Execution.TaskTimeoutSeconds) * time.Second
}

// logVerbose writes a diagnostic line to stderr when --verbose is set.
func logVerbose(format string, args ...any) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
