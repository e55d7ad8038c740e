// Package gemini wraps the Google GenAI SDK behind the three model
// capabilities the portfolio server consumes: persona chat with function
// calling, resume analysis with a structured JSON response, and speech
// synthesis.
package gemini

import (
	"context"
	"fmt"

	"github.com/alexswami/portfolio-server/internal/domain"
	"google.golang.org/genai"
)

// Reply is the outcome of one chat turn: either freeform text or a list of
// requested function calls. When both are present callers treat the calls as
// authoritative and drop the text.
type Reply struct {
	Text  string
	Calls []FunctionCall
}

// FunctionCall is a structured side-effect request returned by the model.
type FunctionCall struct {
	Name string
	Args map[string]string
}

// Config holds Gemini client settings.
type Config struct {
	APIKey       string
	ChatModel    string
	SpeechModel  string
	ContactEmail string
}

// Client talks to the Gemini API.
type Client struct {
	client       *genai.Client
	chatModel    string
	speechModel  string
	contactEmail string
}

// NewClient creates a Gemini client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gemini-3-flash-preview"
	}
	speechModel := cfg.SpeechModel
	if speechModel == "" {
		speechModel = "gemini-2.5-flash-preview-tts"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:       client,
		chatModel:    chatModel,
		speechModel:  speechModel,
		contactEmail: cfg.ContactEmail,
	}, nil
}

// sendEmailDeclaration describes the sendEmail tool offered to the model.
func (c *Client) sendEmailDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "sendEmail",
		Description: fmt.Sprintf("Sends an email message to Alex at %s.", c.contactEmail),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"to": {
					Type:        genai.TypeString,
					Description: fmt.Sprintf("The recipient email address (defaults to %s).", c.contactEmail),
				},
				"subject": {
					Type:        genai.TypeString,
					Description: "A professional subject line for the email.",
				},
				"body": {
					Type:        genai.TypeString,
					Description: "The full message content for the email.",
				},
				"senderName": {
					Type:        genai.TypeString,
					Description: "The name of the user sending the message.",
				},
			},
			Required: []string{"subject", "body", "senderName"},
		},
	}
}

// Chat sends one conversation turn: the persona system instruction, the
// prior transcript for context, and the new user message. The model may
// answer with text or with sendEmail function calls.
func (c *Client) Chat(ctx context.Context, systemInstruction string, history []domain.Message, message string) (*Reply, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.chatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{c.sendEmailDeclaration()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	reply := &Reply{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		call := FunctionCall{Name: fc.Name, Args: make(map[string]string, len(fc.Args))}
		for k, v := range fc.Args {
			if s, ok := v.(string); ok {
				call.Args[k] = s
			} else {
				call.Args[k] = fmt.Sprintf("%v", v)
			}
		}
		reply.Calls = append(reply.Calls, call)
	}

	return reply, nil
}
