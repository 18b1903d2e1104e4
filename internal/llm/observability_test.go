package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogObserver_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	obs := NewLogObserver(zap.New(core))

	obs.OnCallComplete(LLMCallEvent{Task: TaskExtract, Model: "m", Attempts: 1, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskExtract, Model: "m", Attempts: 2, ErrorCode: "TIMEOUT"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "TIMEOUT", entries[1].ContextMap()["code"])
	assert.Equal(t, int64(2), entries[1].ContextMap()["attempts"])
}
