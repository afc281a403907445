package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// BedrockSentenceGenerator implements ports.SentenceGenerator with an
// Amazon Bedrock text model. Used to fill in example sentences for bank
// entries that ship without them.
type BedrockSentenceGenerator struct {
	client  *bedrockruntime.Client
	modelID string
	logger  *zap.Logger
}

// NewBedrockSentenceGenerator creates a Bedrock-backed sentence generator.
func NewBedrockSentenceGenerator(client *bedrockruntime.Client, modelID string, logger *zap.Logger) ports.SentenceGenerator {
	return &BedrockSentenceGenerator{client: client, modelID: modelID, logger: logger}
}

type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateSentences asks the model for example sentences tailored to the
// learner's context.
func (g *BedrockSentenceGenerator) GenerateSentences(ctx context.Context, entry words.BankEntry, profile *users.Profile) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write exactly %d short example sentences using the word %q (%s, meaning: %s) for a %s learner",
		words.MaxSentences, entry.Word, entry.PartOfSpeech, entry.Definition, audience(string(profile.AgeGroup)))
	if profile.Context != "" && profile.Context != "general" {
		prompt += fmt.Sprintf(", themed around %s", profile.Context)
	}
	prompt += `. Respond with a JSON array of strings, nothing else.`

	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        512,
		Messages:         []bedrockMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bedrock request: %w", err)
	}

	output, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invocation failed: %w", err)
	}

	var parsed bedrockResponse
	if err := json.Unmarshal(output.Body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode bedrock response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("bedrock returned empty content")
	}

	sentences, err := parseSentenceArray(parsed.Content[0].Text)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Generated example sentences",
		zap.String("word", entry.Word),
		zap.Int("count", len(sentences)),
	)
	return sentences, nil
}

// parseSentenceArray extracts the JSON array from the model's reply,
// tolerating surrounding prose.
func parseSentenceArray(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model reply")
	}

	var sentences []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &sentences); err != nil {
		return nil, fmt.Errorf("failed to parse sentence array: %w", err)
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("model returned no sentences")
	}
	return sentences, nil
}
