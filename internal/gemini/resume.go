package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexswami/portfolio-server/internal/domain"
	"google.golang.org/genai"
)

const resumePrompt = `Act as an expert technical recruiter. Analyze this resume.
Return ONLY a JSON object with this exact structure:
{
  "score": number (0-100),
  "summary": "one sentence overview",
  "strengths": ["string", "string", "string"],
  "weaknesses": ["string", "string", "string"],
  "actionableSteps": ["string", "string", "string"]
}
Do not include any other text or markdown formatting.`

// AnalyzeResume submits resume bytes for structured review. A response that
// cannot be parsed against the report schema yields (nil, nil): absence of a
// result, not an error.
func (c *Client) AnalyzeResume(ctx context.Context, data []byte, mimeType string) (*domain.ResumeReport, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(resumePrompt),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.chatModel, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		slog.Warn("Empty resume analysis response")
		return nil, nil
	}

	var report domain.ResumeReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		slog.Warn("Resume analysis response is not valid JSON", "error", err)
		return nil, nil
	}
	if !report.Valid() {
		slog.Warn("Resume analysis response failed schema check", "score", report.Score)
		return nil, nil
	}

	return &report, nil
}
