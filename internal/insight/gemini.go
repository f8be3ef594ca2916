package insight

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is a Backend backed by the Gemini API.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

var _ Backend = (*Gemini)(nil)

// NewGemini creates a Gemini backend for the given API key and models.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, textModel: textModel, imageModel: imageModel}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string, temperature *float32) (string, error) {
	var cfg *genai.GenerateContentConfig
	if temperature != nil {
		cfg = &genai.GenerateContentConfig{Temperature: temperature}
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *Gemini) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: aspectRatio},
	})
	if err != nil {
		return nil, err
	}
	return firstInlineImage(resp)
}

var errNoImage = errors.New("response contains no image")

// firstInlineImage returns the inline data of the first part of the first candidate that has any.
func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			return part.InlineData.Data, nil
		}
	}
	return nil, errNoImage
}
