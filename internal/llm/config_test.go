package llm

import (
	"testing"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ExtractTimeoutMatchesGlobalDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60000, cfg.Tasks[TaskExtract].TimeoutMs)
	assert.Equal(t, domain.ProviderGemini, cfg.Provider)
	assert.Equal(t, 2000, cfg.Tasks[TaskExtract].MaxTokens)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("SCP_LLM_TIMEOUT_MS", "9000")
	t.Setenv("SCP_LLM_EXTRACT_TIMEOUT_MS", "15000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskExtract))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("unknown")))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("SCP_LLM_EXTRACT_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 60000, cfg.TaskTimeout(TaskExtract))
}

func TestLoadConfig_OllamaProviderSwitchesDefaultModel(t *testing.T) {
	t.Setenv("SCP_LLM_PROVIDER", "ollama")
	t.Setenv("SCP_LLM_API_KEY", "")

	cfg := LoadConfig()

	assert.Equal(t, domain.ProviderOllama, cfg.Provider)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadConfig_ExplicitModelWins(t *testing.T) {
	t.Setenv("SCP_LLM_PROVIDER", "ollama")
	t.Setenv("SCP_LLM_MODEL", "qwen2.5")

	cfg := LoadConfig()

	assert.Equal(t, "qwen2.5", cfg.Model)
}
