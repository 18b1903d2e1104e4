package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on top of the Google GenAI SDK.
type geminiClient struct {
	cfg      LLMConfig
	models   *genai.Models
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by the Gemini API. It fails
// with ErrMissingAPIKey when cfg carries no key.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &geminiClient{cfg: cfg, models: client.Models, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	genCfg := c.contentConfig(req)
	return generate(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (*GenerateResponse, error) {
		resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), genCfg)
		if err != nil {
			return nil, err
		}
		return &GenerateResponse{Text: resp.Text(), Model: resp.ModelVersion}, nil
	})
}

func (c *geminiClient) contentConfig(req GenerateRequest) *genai.GenerateContentConfig {
	temp, maxTok := c.cfg.sampling(req)
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}
	return genCfg
}

// Available reports whether the configured model can be resolved.
func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.models.Get(ctx, c.cfg.Model, nil)
	return err == nil
}
