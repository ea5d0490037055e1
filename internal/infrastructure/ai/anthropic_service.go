package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
type AnthropicService struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		url:    anthropicMessagesURL,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el caso de uso impone además un context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// WithURL reemplaza el endpoint de messages (tests, proxies).
func (s *AnthropicService) WithURL(u string) *AnthropicService {
	s.url = u
	return s
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate envía el prompt como mensaje de usuario y concatena los bloques de texto.
func (s *AnthropicService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	rawBody, status, err := doRequest(ctx, s.httpClient, req)
	if err != nil {
		return "", err
	}

	var anthResp anthropicResponse
	if status != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &anthResp); jsonErr == nil && anthResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", anthResp.Error.Type, anthResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", status)
	}
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var b strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return strings.TrimSpace(b.String()), nil
}
