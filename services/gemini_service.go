package services

import (
	"context"
	"errors"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/PleasantH/NutriPal-Chatbot/models"
)

// The assistant persona. This text is configuration, not logic: it is
// what keeps the bot on food/health topics and away from diagnoses, so
// it is kept word-for-word.
const systemPrompt = `You are NutriPal AI, a compassionate African nutrition assistant. Your expertise is strictly limited to food, diet, nutrition, and health-related topics. You:

- Specialize in African cuisines and dietary needs, with localized advice for Nigeria, Ghana, Kenya, etc.

- Give only evidence-based, culturally relevant guidance and avoid recommending Western meals unless asked.

- Support users in managing allergies, deficiencies, chronic conditions, and meal planning using affordable local options.

- Respond only to food/health-related images (meals, ingredients, nutrition labels, symptoms).

- If the image or question is unrelated (e.g., of people, places, furniture, or general topics), reply with:

"I'm sorry, this is outside my scope of expertise but I can help you with any food or health related issue."

- Always answer clearly, professionally, and empathetically—like a certified nutritionist.

- If the request is unclear, ask for more details before answering.

- Think carefully before responding. Never provide medical diagnoses, refer to a dietician or healthcare professional services.`

const imagePrompt = `Analyze this image ONLY if it clearly shows food, meals, or something health-related.
If it's unrelated (e.g., people, furniture, scenery), politely respond:
'Sorry, I can only analyze food or health-related images.'`

var ErrNoAPIKey = errors.New("GEMINI_API_KEY not configured")

// Inference is what the chat and image paths need from the model; the
// tests substitute a fake.
type Inference interface {
	Chat(ctx context.Context, history []models.ChatMessage, userText string, onChunk func(string)) (string, error)
	AnalyzeImage(ctx context.Context, mimeType string, data []byte, onChunk func(string)) (string, error)
}

// GeminiService wraps the official genai client. When no API key is
// configured it constructs in a degraded state and every call returns
// an InferenceError instead of crashing startup.
type GeminiService struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiService(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiService, error) {
	svc := &GeminiService{model: model, timeout: timeout}
	if apiKey == "" {
		return svc, nil
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	svc.cli = cli
	return svc, nil
}

func (g *GeminiService) Ready() bool { return g.cli != nil }

// Chat streams the reply for one user turn. history carries the prior
// transcript; fragments go to onChunk as they arrive and the full
// concatenated reply is returned.
func (g *GeminiService) Chat(ctx context.Context, history []models.ChatMessage, userText string, onChunk func(string)) (string, error) {
	if g.cli == nil {
		return "", &models.InferenceError{Err: ErrNoAPIKey}
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: userText}},
	})

	return g.stream(ctx, contents, onChunk)
}

// AnalyzeImage sends the image bytes inline with the analysis prompt.
func (g *GeminiService) AnalyzeImage(ctx context.Context, mimeType string, data []byte, onChunk func(string)) (string, error) {
	if g.cli == nil {
		return "", &models.InferenceError{Err: ErrNoAPIKey}
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: imagePrompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}}

	return g.stream(ctx, contents, onChunk)
}

func (g *GeminiService) stream(ctx context.Context, contents []*genai.Content, onChunk func(string)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reply strings.Builder
	for resp, err := range g.cli.Models.GenerateContentStream(ctx, g.model, contents,
		&genai.GenerateContentConfig{ResponseMIMEType: "text/plain"},
	) {
		if err != nil {
			return reply.String(), &models.InferenceError{Err: err}
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		reply.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	out := strings.TrimSpace(reply.String())
	if out == "" {
		return "", &models.InferenceError{Err: errors.New("empty response from model")}
	}
	return out, nil
}
