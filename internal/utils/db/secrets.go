package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/gestaofrota/api-combustivel/internal/config"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter é o pedaço do cliente do Secrets Manager que usamos.
type secretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var novoClienteSecrets = func(ctx context.Context) (secretGetter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando definidos; senão busca no Secrets Manager.
func retrieveCredentials(ctx context.Context, cfg *config.Config) (string, string, error) {
	if cfg.DBUsername != "" && cfg.DBPassword != "" {
		return cfg.DBUsername, cfg.DBPassword, nil
	}
	if cfg.DBSecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	client, err := novoClienteSecrets(ctx)
	if err != nil {
		return "", "", fmt.Errorf("config aws: %w", err)
	}
	return lerSegredo(ctx, client, cfg.DBSecretID)
}

func lerSegredo(ctx context.Context, client secretGetter, secretID string) (string, string, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s: %w", secretID, err)
	}
	return secret.Username, secret.Password, nil
}
