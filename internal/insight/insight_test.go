package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"
)

// MockBackend is a mock implementation of Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GenerateText(ctx context.Context, prompt string, temperature *float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	args := m.Called(ctx, prompt, aspectRatio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type recorded struct {
	op string
	ok bool
}

type fakeRecorder struct {
	calls []recorded
}

func (r *fakeRecorder) InsightRequest(op string, ok bool) {
	r.calls = append(r.calls, recorded{op, ok})
}

func TestGenerateDescription(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		category string
		reply    string
		err      error
		want     string
		wantCat  string
		wantOK   bool
	}{
		{name: "success", category: "Bags", reply: " Crafted to last. Built for travel. ", want: "Crafted to last. Built for travel.", wantCat: `"Bags"`, wantOK: true},
		{name: "error falls back", category: "Bags", err: errors.New("quota"), want: FallbackDescription, wantCat: `"Bags"`},
		{name: "empty reply falls back", category: "Bags", reply: "  ", want: FallbackDescription, wantCat: `"Bags"`},
		{name: "empty category becomes General", category: "", reply: "ok", want: "ok", wantCat: `"General"`, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackend)
			rec := &fakeRecorder{}
			backend.On("GenerateText", ctx, mock.MatchedBy(func(p string) bool {
				return strings.Contains(p, `"Weekender"`) && strings.Contains(p, "category "+tt.wantCat)
			}), mock.MatchedBy(func(temp *float32) bool {
				return temp != nil && *temp == 0.7
			})).Return(tt.reply, tt.err)

			got := NewService(backend, rec).GenerateDescription(ctx, "Weekender", tt.category)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, []recorded{{"description", tt.wantOK}}, rec.calls)
			backend.AssertExpectations(t)
		})
	}
}

func TestGenerateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns png data url", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("GenerateImage", ctx, "a lamp", "3:4").Return([]byte("abc"), nil)

		url, ok := NewService(backend, nil).GenerateImage(ctx, "a lamp")

		assert.True(t, ok)
		assert.Equal(t, "data:image/png;base64,YWJj", url)
	})

	t.Run("error yields nothing", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("GenerateImage", ctx, "a lamp", "3:4").Return(nil, errors.New("boom"))

		url, ok := NewService(backend, nil).GenerateImage(ctx, "a lamp")

		assert.False(t, ok)
		assert.Empty(t, url)
	})

	t.Run("empty image yields nothing", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("GenerateImage", ctx, "a lamp", "3:4").Return([]byte{}, nil)

		_, ok := NewService(backend, nil).GenerateImage(ctx, "a lamp")
		assert.False(t, ok)
	})
}

func TestAnalyzePerformance(t *testing.T) {
	ctx := context.Background()
	summary := "2 items for $20, 1 items for $5"

	backend := new(MockBackend)
	backend.On("GenerateText", ctx, "Analyze these recent orders and provide a single short sentence of business insight: "+summary, (*float32)(nil)).
		Return("Sales are climbing.", nil).Once()
	assert.Equal(t, "Sales are climbing.", NewService(backend, nil).AnalyzePerformance(ctx, summary))

	failing := new(MockBackend)
	failing.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("", errors.New("down"))
	assert.Equal(t, FallbackAnalysis, NewService(failing, nil).AnalyzePerformance(ctx, summary))
}

func TestDisabledBackend_ServesFallbacks(t *testing.T) {
	ctx := context.Background()
	svc := NewService(Disabled{}, nil)

	assert.Equal(t, FallbackDescription, svc.GenerateDescription(ctx, "Lamp", "Home"))
	assert.Equal(t, FallbackAnalysis, svc.AnalyzePerformance(ctx, "nothing"))
	_, ok := svc.GenerateImage(ctx, "Lamp")
	assert.False(t, ok)
}

func TestProductImagePrompt(t *testing.T) {
	prompt := ProductImagePrompt(ProductAttributes{Name: "Heritage Weekender", Category: "Bags", Material: "Full-Grain Leather"})

	assert.True(t, strings.HasPrefix(prompt, "Generate a high-accuracy e-commerce catalog product image."))
	assert.Contains(t, prompt, "Product name: Heritage Weekender\nCategory: Bags\nMaterial: Full-Grain Leather\nColor: True to life\nFinish: Matte")
	assert.True(t, strings.HasSuffix(prompt, "- Change colors or proportions"))
}

func TestFirstInlineImage(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    []byte
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name: "text only",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "sorry"}}},
			}}},
			wantErr: true,
		},
		{
			name: "skips text before image",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "here you go"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2}}},
				}},
			}}},
			want: []byte{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstInlineImage(tt.resp)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
