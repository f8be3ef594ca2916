// Package insight produces marketing copy, product images and sales insights
// with a generative model. Every call is a single best-effort attempt: errors
// are logged and replaced by a fixed fallback, never returned.
package insight

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	FallbackDescription = "Premium quality item perfect for your daily needs."
	FallbackAnalysis    = "Keep up the good work! Sales are steady."

	// DefaultCategory stands in for a product without a category in prompts.
	DefaultCategory = "General"

	// ImageAspectRatio is the portrait ratio product images are generated in.
	ImageAspectRatio = "3:4"

	descriptionTemperature float32 = 0.7
)

// ErrDisabled is returned by the Disabled backend.
var ErrDisabled = errors.New("insight backend disabled")

// Backend performs one generation call against a model provider.
type Backend interface {
	GenerateText(ctx context.Context, prompt string, temperature *float32) (string, error)
	// GenerateImage returns the raw bytes of the first image in the response.
	GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error)
}

// Recorder observes the outcome of each call.
type Recorder interface {
	InsightRequest(op string, ok bool)
}

// Service wraps a Backend with prompts and fallbacks.
type Service struct {
	backend  Backend
	recorder Recorder
}

// NewService returns a Service. recorder may be nil.
func NewService(backend Backend, recorder Recorder) *Service {
	return &Service{backend: backend, recorder: recorder}
}

func (s *Service) record(op string, ok bool) {
	if s.recorder != nil {
		s.recorder.InsightRequest(op, ok)
	}
}

// GenerateDescription writes a two sentence marketing blurb for a product.
func (s *Service) GenerateDescription(ctx context.Context, name, category string) string {
	if category == "" {
		category = DefaultCategory
	}
	prompt := fmt.Sprintf("Write a compelling 2-sentence marketing description for a product named \"%s\" in the category \"%s\". Focus on its premium quality and usefulness.", name, category)
	temperature := descriptionTemperature

	text, err := s.backend.GenerateText(ctx, prompt, &temperature)
	if err != nil {
		slog.Error("Description generation failed", "product", name, "err", err)
		s.record("description", false)
		return FallbackDescription
	}
	if text = strings.TrimSpace(text); text == "" {
		s.record("description", false)
		return FallbackDescription
	}
	s.record("description", true)
	return text
}

// GenerateImage renders prompt as a PNG data URL. ok is false when no image was produced.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	data, err := s.backend.GenerateImage(ctx, prompt, ImageAspectRatio)
	if err != nil {
		slog.Error("Image generation failed", "err", err)
		s.record("image", false)
		return "", false
	}
	if len(data) == 0 {
		s.record("image", false)
		return "", false
	}
	s.record("image", true)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), true
}

// AnalyzePerformance turns an order summary into one sentence of business insight.
func (s *Service) AnalyzePerformance(ctx context.Context, summary string) string {
	prompt := "Analyze these recent orders and provide a single short sentence of business insight: " + summary

	text, err := s.backend.GenerateText(ctx, prompt, nil)
	if err != nil {
		slog.Error("Performance analysis failed", "err", err)
		s.record("analysis", false)
		return FallbackAnalysis
	}
	if text = strings.TrimSpace(text); text == "" {
		s.record("analysis", false)
		return FallbackAnalysis
	}
	s.record("analysis", true)
	return text
}

// Disabled is a Backend used when no API key is configured.
type Disabled struct{}

func (Disabled) GenerateText(context.Context, string, *float32) (string, error) {
	return "", ErrDisabled
}

func (Disabled) GenerateImage(context.Context, string, string) ([]byte, error) {
	return nil, ErrDisabled
}
