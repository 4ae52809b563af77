package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type GeminiClient struct {
	apiKey     string
	model      string
	restaurant string
}

func NewGeminiClient() *GeminiClient {
	restaurant := os.Getenv("CAPTION_RESTAURANT_NAME")
	if restaurant == "" {
		restaurant = "Milano Pizza Gatineau"
	}

	return &GeminiClient{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		model:      os.Getenv("GEMINI_MODEL"),
		restaurant: restaurant,
	}
}

// Caption sends the image to Gemini and parses the JSON-only reply.
func (g *GeminiClient) Caption(
	ctx context.Context,
	imageBase64 string,
	category string,
	language string,
) (*Result, error) {

	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return nil, errors.New("missing GEMINI_MODEL")
	}
	if imageBase64 == "" {
		return nil, errors.New("empty image")
	}

	prompt := BuildCaptionPrompt(g.restaurant, category, language)

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model,
		g.apiKey,
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": prompt},
					{
						"inline_data": map[string]string{
							"mime_type": "image/jpeg",
							"data":      imageBase64,
						},
					},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.4,
			"maxOutputTokens": 512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini api error: %s", string(raw))
	}

	// Gemini response shape
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	return parseCaptionOutput(result.Candidates[0].Content.Parts[0].Text, category), nil
}

// parseCaptionOutput tries the strict-JSON contract first and falls
// back to wrapping free text, so a sloppy model reply still yields a
// usable suggestion instead of an error.
func parseCaptionOutput(output, category string) *Result {
	var r Result
	if json.Valid([]byte(output)) && json.Unmarshal([]byte(output), &r) == nil {
		if r.SuggestedCategory == "" {
			r.SuggestedCategory = category
		}
		return &r
	}

	fallbackCategory := category
	if fallbackCategory == "" {
		fallbackCategory = "popular-dishes"
	}
	return &Result{
		DishName:          "",
		Description:       output,
		SuggestedCategory: fallbackCategory,
	}
}
