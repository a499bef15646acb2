package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"neurax-chat-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Models carrying these markers accept a thinking budget.
var thinkingCapableMarkers = []string{"thinking", "pro"}

type Provider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// Ensure Provider implements ChatProvider
var _ llm.ChatProvider = &Provider{}

func NewProvider(apiKey string) *Provider {
	return &Provider{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerationConfig struct {
	Temperature    *float64              `json:"temperature,omitempty"`
	ThinkingConfig *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type geminiStreamRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
}

type geminiWebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type geminiGroundingChunk struct {
	Web *geminiWebSource `json:"web"`
}

type geminiGroundingMetadata struct {
	GroundingChunks []geminiGroundingChunk `json:"groundingChunks"`
}

type geminiCandidate struct {
	Content           *geminiContent           `json:"content"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata"`
}

type geminiStreamResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

// StreamChat starts one streaming turn against the Gemini REST API
// (streamGenerateContent with SSE framing). A missing credential fails
// synchronously before any network activity.
func (p *Provider) StreamChat(ctx context.Context, req *llm.ChatRequest) (<-chan llm.Event, error) {
	if p.APIKey == "" {
		return nil, &llm.ConfigurationError{Reason: "GEMINI_API_KEY is missing from environment"}
	}

	payload := buildStreamRequest(req)
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, llm.WrapUnknown(err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.BaseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, llm.WrapUnknown(err)
	}
	httpReq.Header.Set("x-goog-api-key", p.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	events := make(chan llm.Event)
	go p.stream(httpReq, events)
	return events, nil
}

func buildStreamRequest(req *llm.ChatRequest) *geminiStreamRequest {
	// Prior turns first, one content per message, role and order preserved.
	// Context is reestablished on every call.
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, msg := range req.History {
		contents = append(contents, geminiContent{
			Role:  msg.Role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	// Current turn: inline attachments before the text part.
	parts := make([]geminiPart, 0, len(req.Attachments)+1)
	for _, att := range req.Attachments {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: att.MimeType,
				Data:     stripDataURIPrefix(att.Data),
			},
		})
	}
	parts = append(parts, geminiPart{Text: req.Text})
	contents = append(contents, geminiContent{
		Role:  llm.ChatMessageRoleUser,
		Parts: parts,
	})

	genConfig := &geminiGenerationConfig{}
	if !req.EnableThinking {
		// The backend's own reasoning control supersedes manual temperature.
		temp := req.Temperature
		genConfig.Temperature = &temp
	}
	if req.EnableThinking && req.ThinkingBudget > 0 && supportsThinking(req.Model) {
		genConfig.ThinkingConfig = &geminiThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}

	payload := &geminiStreamRequest{
		Contents:         contents,
		GenerationConfig: genConfig,
	}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemInstruction}},
		}
	}
	if req.EnableWebSearch {
		payload.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}
	return payload
}

// stream consumes the SSE response and emits events. Every emitted event
// carries the cumulative text; exactly one terminal event is emitted before
// the channel closes.
func (p *Provider) stream(httpReq *http.Request, events chan<- llm.Event) {
	defer close(events)

	res, err := p.Client.Do(httpReq)
	if err != nil {
		events <- llm.Event{Err: &llm.TransportError{Message: err.Error()}}
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		events <- llm.Event{Err: &llm.TransportError{
			Message: fmt.Sprintf("status error, got status %d. with response body %s", res.StatusCode, string(resBody)),
		}}
		return
	}

	var fullText strings.Builder
	var captured []llm.GroundingSource

	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk geminiStreamResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			events <- llm.Event{Err: llm.WrapUnknown(fmt.Errorf("parse stream chunk: %w", err))}
			return
		}
		if len(chunk.Candidates) == 0 {
			continue
		}
		candidate := chunk.Candidates[0]

		delta := ""
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				delta += part.Text
			}
		}
		if delta != "" {
			fullText.WriteString(delta)
			events <- llm.Event{Text: fullText.String()}
		}

		if candidate.GroundingMetadata != nil {
			for _, g := range candidate.GroundingMetadata.GroundingChunks {
				if g.Web != nil && g.Web.URI != "" && g.Web.Title != "" {
					captured = append(captured, llm.GroundingSource{
						Title: g.Web.Title,
						URI:   g.Web.URI,
					})
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		events <- llm.Event{Err: &llm.TransportError{Message: err.Error()}}
		return
	}

	events <- llm.Event{
		Text:    fullText.String(),
		Sources: dedupeSources(captured),
		Done:    true,
	}
}

// stripDataURIPrefix reduces a "data:<mime>;base64,<payload>" URI to the raw
// base64 payload. Plain base64 input is passed through.
func stripDataURIPrefix(data string) string {
	if idx := strings.Index(data, "base64,"); idx >= 0 {
		return data[idx+len("base64,"):]
	}
	return data
}

// dedupeSources keeps one source per URI; the first-seen title wins.
// Returns nil when nothing was captured.
func dedupeSources(sources []llm.GroundingSource) []llm.GroundingSource {
	if len(sources) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(sources))
	unique := make([]llm.GroundingSource, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s.URI]; ok {
			continue
		}
		seen[s.URI] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}

func supportsThinking(model string) bool {
	for _, marker := range thinkingCapableMarkers {
		if strings.Contains(model, marker) {
			return true
		}
	}
	return false
}
