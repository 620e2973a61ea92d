package flavor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for flavor text
const DefaultModel = "gemini-2.5-flash"

// Generator is the slice of the genai models API the provider needs.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates flavor text with Google's Gemini API
type Gemini struct {
	Models Generator
	Model  string
}

// NewGemini connects a provider to the Gemini API
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("flavor: create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{Models: client.Models, Model: model}, nil
}

func (g *Gemini) SystemMessage(ctx context.Context, level int, bossName string) (string, error) {
	prompt := fmt.Sprintf(`You are the operating system of a computer currently under attack by a virus named %q (Level %d).
Generate a short, urgent, 1-sentence system alert notification in English warning the user about this specific threat.
Make it sound technical but slightly panicked. Do not include quotes. Keep it under 90 characters.
Example: WARNING: %s intrusion detected, firewall has failed!`, bossName, level, bossName)
	return g.generate(ctx, prompt)
}

func (g *Gemini) BossTaunt(ctx context.Context, bossName string) (string, error) {
	prompt := fmt.Sprintf(`You are a computer virus named %q. You have just been engaged by the user.
Write a very short, glitchy, arrogant taunt in English (max 10 words). Do not include quotes.
Example: You can't delete me!`, bossName)
	return g.generate(ctx, prompt)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	resp, err := g.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("flavor: generate content: %w", err)
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
