// Package secrets loads provider credentials from AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	appconfig "wordaday-backend/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"
)

// bundle is the JSON shape of the credentials secret.
type bundle struct {
	GroqAPIKey           string `json:"groqApiKey"`
	OpenAIAPIKey         string `json:"openaiApiKey"`
	UnsplashAccessKey    string `json:"unsplashAccessKey"`
	MerriamWebsterAPIKey string `json:"merriamWebsterApiKey"`
	ForvoAPIKey          string `json:"forvoApiKey"`
	JWTSecret            string `json:"jwtSecret"`
}

// Apply fetches the named secret and fills any credential fields the
// environment left empty. A missing secret name is a no-op so local
// development runs on environment variables alone.
func Apply(ctx context.Context, client *secretsmanager.Client, cfg *appconfig.Config, logger *zap.Logger) error {
	if cfg.SecretsName == "" {
		return nil
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.SecretsName),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch secret %s: %w", cfg.SecretsName, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", cfg.SecretsName)
	}

	var b bundle
	if err := json.Unmarshal([]byte(*out.SecretString), &b); err != nil {
		return fmt.Errorf("failed to parse secret %s: %w", cfg.SecretsName, err)
	}

	applyIfEmpty(&cfg.GroqAPIKey, b.GroqAPIKey)
	applyIfEmpty(&cfg.OpenAIAPIKey, b.OpenAIAPIKey)
	applyIfEmpty(&cfg.UnsplashAccessKey, b.UnsplashAccessKey)
	applyIfEmpty(&cfg.MerriamWebsterAPIKey, b.MerriamWebsterAPIKey)
	applyIfEmpty(&cfg.ForvoAPIKey, b.ForvoAPIKey)
	applyIfEmpty(&cfg.JWTSecret, b.JWTSecret)

	logger.Info("Loaded credentials from Secrets Manager",
		zap.String("secret", cfg.SecretsName),
	)
	return nil
}

func applyIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
