package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

var prompt = "Analyze this receipt image and extract the following information in JSON format:\n" +
	"- Total amount (just the number)\n" +
	"- Date (in ISO format)\n" +
	"- Description or items purchased (brief summary)\n" +
	"- Merchant/store name\n" +
	"- Suggested category (one of: " + strings.Join(Categories, ",") + ")\n\n" +
	"Only respond with valid JSON in this exact format:\n" +
	"{\n" +
	"  \"amount\": number,\n" +
	"  \"date\": \"ISO date string\",\n" +
	"  \"description\": \"string\",\n" +
	"  \"merchantName\": \"string\",\n" +
	"  \"category\": \"string\"\n" +
	"}\n\n" +
	"If it is not a receipt, return an empty object."

// GeminiScanner reads receipts with a Gemini model.
type GeminiScanner struct {
	client *genai.Client
	model  string
	now    func() time.Time
}

// NewGeminiScanner creates a scanner using the Gemini API.
func NewGeminiScanner(ctx context.Context, apiKey, model string) (*GeminiScanner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiScanner{client: client, model: model, now: time.Now}, nil
}

func (s *GeminiScanner) Scan(ctx context.Context, image []byte, mimeType string) (Receipt, error) {
	if !slices.Contains(MIMETypes, mimeType) {
		return Receipt{}, ErrUnsupportedImage
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
				{Text: prompt},
			},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: generate content: %w", ErrInvalidResponse, err)
	}

	raw := resp.Text()
	if raw == "" {
		return Receipt{}, fmt.Errorf("%w: empty response from model", ErrInvalidResponse)
	}

	return Parse(raw, s.now())
}

var _ Scanner = (*GeminiScanner)(nil)
