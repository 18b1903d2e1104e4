package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/importer"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/llm"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/sheet"
	"go.uber.org/zap"
)

// ErrUnparsable is returned when a response holds no readable JSON payload.
// Callers treat it as zero candidates for the sheet.
var ErrUnparsable = errors.New("extraction response not parsable")

// Extractor reads raw work-log candidates out of one flattened sheet.
// Candidates come back in sheet order with compound OP references left
// unexpanded.
type Extractor interface {
	Extract(ctx context.Context, s sheet.Sheet) ([]importer.RawCandidate, error)
}

type llmExtractor struct {
	client llm.LLMClient
	logger *zap.Logger
}

// NewLLMExtractor creates an Extractor backed by a language model.
func NewLLMExtractor(client llm.LLMClient, logger *zap.Logger) Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &llmExtractor{client: client, logger: logger}
}

func (e *llmExtractor) Extract(ctx context.Context, s sheet.Sheet) ([]importer.RawCandidate, error) {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   buildExtractUserPrompt(s),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extract failed for sheet %q: %w", s.Name, err)
	}
	return ParseCandidates(resp.Text, s.Name, e.logger)
}

type envelope struct {
	Records []json.RawMessage `json:"registros"`
}

// ParseCandidates decodes a service response into candidates. The payload
// may be a bare array, an object wrapping the array under "registros", or a
// single object, optionally surrounded by prose or code fences. Elements
// that do not decode are logged and skipped.
func ParseCandidates(text, sheetName string, logger *zap.Logger) ([]importer.RawCandidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	elems, err := payloadElements(text)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnparsable, sheetName, err)
	}

	candidates, errs := importer.DecodeCandidates(elems)
	for _, decodeErr := range errs {
		logger.Warn("skipping malformed candidate",
			zap.String("sheet", sheetName), zap.String("reason", decodeErr.Error()))
	}
	return candidates, nil
}

func payloadElements(text string) ([]json.RawMessage, error) {
	if objectFirst(text) {
		if obj, err := llm.ExtractJSON[json.RawMessage](text, nil); err == nil {
			var env envelope
			if json.Unmarshal(obj, &env) == nil && env.Records != nil {
				return env.Records, nil
			}
			return []json.RawMessage{obj}, nil
		}
	}
	return llm.ExtractJSONArray[json.RawMessage](text, nil)
}

// objectFirst reports whether the first JSON opener in text is '{'.
func objectFirst(text string) bool {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			return true
		case '[':
			return false
		}
	}
	return false
}
