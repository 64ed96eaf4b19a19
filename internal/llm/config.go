package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of NLU task being performed. Each task gets
// its own temperature, token budget, and timeout.
type TaskType string

const (
	TaskClassify  TaskType = "classify"
	TaskSelect    TaskType = "select"
	TaskSummarize TaskType = "summarize"
	TaskAnswer    TaskType = "answer"
	TaskInsight   TaskType = "insight"
)

// TaskConfig holds per-task model parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides the global timeout if > 0
}

// Config holds all configuration for the language-model subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The model service
// is disabled by default; the deterministic engine works without it but
// every conversational surface requires it.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskClassify:  {Temperature: 0, MaxTokens: 8, TimeoutMs: 6000},
			TaskSelect:    {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 12000},
			TaskSummarize: {Temperature: 0.4, MaxTokens: 256, TimeoutMs: 6000},
			TaskAnswer:    {Temperature: 0.2, MaxTokens: 512, TimeoutMs: 10000},
			TaskInsight:   {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads configuration from SCOUTLINE_LLM_* environment variables,
// falling back to defaults for anything unset.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SCOUTLINE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SCOUTLINE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SCOUTLINE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SCOUTLINE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SCOUTLINE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("SCOUTLINE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskClassify, "SCOUTLINE_LLM_CLASSIFY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSelect, "SCOUTLINE_LLM_SELECT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSummarize, "SCOUTLINE_LLM_SUMMARIZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAnswer, "SCOUTLINE_LLM_ANSWER_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskInsight, "SCOUTLINE_LLM_INSIGHT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a task in milliseconds.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
