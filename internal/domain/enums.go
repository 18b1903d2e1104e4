package domain

type ReplayStatus string

const (
	ReplayReplayed ReplayStatus = "replayed"
	ReplayFailed   ReplayStatus = "failed"
	ReplaySkipped  ReplayStatus = "skipped"
)

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOllama LLMProvider = "ollama"
)
