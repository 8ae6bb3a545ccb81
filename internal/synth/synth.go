// Package synth sends the assembled terrain context to the generative
// model and validates the tire design values it returns.
package synth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/roverworks/wheelsync/internal/assemble"
	"github.com/roverworks/wheelsync/pkg/anthropic"
)

// Design holds the synthesized tire design values. The design fields are
// strings carrying units (e.g. "30 mm"); reasoning is free text.
type Design struct {
	TreadSpacing   string `json:"Tread_Spacing"`
	TireThickness  string `json:"Tire_Thickness"`
	TireOD         string `json:"Tire_OD"`
	TreadThickness string `json:"Tread_Thickness"`
	Reasoning      string `json:"reasoning"`
}

// requiredKeys must all be present in the model's JSON object.
var requiredKeys = []string{
	"Tread_Spacing",
	"Tire_Thickness",
	"Tire_OD",
	"Tread_Thickness",
	"reasoning",
}

// designKeys must carry non-empty string values with units.
var designKeys = []string{
	"Tread_Spacing",
	"Tire_Thickness",
	"Tire_OD",
	"Tread_Thickness",
}

// provenance records where the analysis context came from.
type provenance struct {
	GeneratedAt string `json:"generated_at"`
	DatasetPath string `json:"dataset_path"`
	ImagePath   string `json:"image_path"`
}

// payload is the user-facing JSON context sent to the model.
type payload struct {
	Provenance provenance       `json:"context_provenance"`
	Analysis   assemble.Context `json:"analysis"`
}

// Synthesizer drives the model call.
type Synthesizer struct {
	client       anthropic.Client
	model        string
	maxTokens    int64
	systemPrompt string
}

// New creates a Synthesizer.
func New(client anthropic.Client, model string, maxTokens int64, systemPrompt string) *Synthesizer {
	return &Synthesizer{
		client:       client,
		model:        model,
		maxTokens:    maxTokens,
		systemPrompt: systemPrompt,
	}
}

// Synthesize sends the analysis context wrapped with provenance and returns
// the validated design. The model reply may wrap its JSON object in code
// fences or surrounding prose; anything outside the outermost braces is
// discarded before parsing.
func (s *Synthesizer) Synthesize(ctx context.Context, analysis assemble.Context, datasetPath, imagePath string) (*Design, error) {
	body, err := json.Marshal(payload{
		Provenance: provenance{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			DatasetPath: datasetPath,
			ImagePath:   imagePath,
		},
		Analysis: analysis,
	})
	if err != nil {
		return nil, eris.Wrap(err, "synth: marshal context")
	}

	zap.L().Info("synth: sending design request",
		zap.String("model", s.model),
		zap.Int("context_chars", len(body)),
	)

	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    s.systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: string(body)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "synth: create message")
	}
	resp.Usage.LogCost(s.model, "design")

	text := joinText(resp)
	design, err := ParseDesign(text)
	if err != nil {
		zap.L().Error("synth: model output rejected",
			zap.Error(err),
			zap.String("preview", preview(text, 200)),
		)
		return nil, err
	}

	return design, nil
}

// ParseDesign extracts the single JSON object from model output and
// validates the required keys.
func ParseDesign(text string) (*Design, error) {
	cleaned := cleanJSON(text)
	if cleaned == "" || !strings.HasPrefix(cleaned, "{") {
		return nil, eris.New("synth: model output does not contain a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, eris.Wrap(err, "synth: unmarshal model output")
	}

	var missing []string
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("synth: JSON missing required keys: %s", strings.Join(missing, ", "))
	}

	var d Design
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return nil, eris.Wrap(err, "synth: decode design values")
	}

	for _, k := range designKeys {
		var v string
		if err := json.Unmarshal(raw[k], &v); err != nil || strings.TrimSpace(v) == "" {
			return nil, eris.Errorf("synth: design key %q must be a non-empty string with units", k)
		}
	}

	return &d, nil
}

// joinText concatenates the text blocks of a model response.
func joinText(resp *anthropic.MessageResponse) string {
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n]
	}
	return s
}
