package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// SpeechSampleRate is the PCM sample rate of Gemini TTS output.
const SpeechSampleRate = 24000

// Speech synthesizes spoken audio for the given text. Returns raw 16-bit
// little-endian mono PCM at SpeechSampleRate, or an error when the model
// produced no audio.
func (c *Client) Speech(ctx context.Context, text string) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText("Say warmly: "+text, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.speechModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Kore"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("no audio in speech response")
}
